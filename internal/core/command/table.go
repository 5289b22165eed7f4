package command

import (
	"sort"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/pkg/resp"
)

// Name is an uppercased command name.
type Name string

// Supported commands.
const (
	Get    Name = "GET"
	Set    Name = "SET"
	Delete Name = "DELETE"
	Flush  Name = "FLUSH"
	MGet   Name = "MGET"
	MSet   Name = "MSET"
)

// Store is the storage the command handlers operate on.
type Store interface {
	Get(key string) (resp.Value, bool)
	Set(key string, v resp.Value)
	Delete(key string) bool
	Flush() int
	MGet(keys []string) []resp.Value
	MSet(pairs []memory.Pair) int
}

type handlerFunc func(s Store, args []resp.Value) (resp.Value, error)

// entry describes one command. maxArgs < 0 means variadic.
type entry struct {
	minArgs int
	maxArgs int
	handler handlerFunc
}

var table = map[Name]entry{
	Get:    {minArgs: 1, maxArgs: 1, handler: handleGet},
	Set:    {minArgs: 2, maxArgs: 2, handler: handleSet},
	Delete: {minArgs: 1, maxArgs: 1, handler: handleDelete},
	Flush:  {minArgs: 0, maxArgs: 0, handler: handleFlush},
	MGet:   {minArgs: 1, maxArgs: -1, handler: handleMGet},
	MSet:   {minArgs: 1, maxArgs: -1, handler: handleMSet},
}

// Names returns the supported command names in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for n := range table {
		names = append(names, string(n))
	}
	sort.Strings(names)
	return names
}

// Lookup reports whether name (already uppercased) is a known command.
func Lookup(name string) bool {
	_, ok := table[Name(name)]
	return ok
}

func (e entry) checkArity(name Name, n int) error {
	if n < e.minArgs || (e.maxArgs >= 0 && n > e.maxArgs) {
		return domain.WrongArgs(string(name))
	}
	return nil
}

func keyOf(v resp.Value) (string, error) {
	if v.Kind() != resp.KindString {
		return "", domain.ErrInvalidKey.WithDetails(v.Kind().String())
	}
	return v.Str(), nil
}

func handleGet(s Store, args []resp.Value) (resp.Value, error) {
	key, err := keyOf(args[0])
	if err != nil {
		return resp.Value{}, err
	}
	v, ok := s.Get(key)
	if !ok {
		return resp.Null(), nil
	}
	return v, nil
}

func handleSet(s Store, args []resp.Value) (resp.Value, error) {
	key, err := keyOf(args[0])
	if err != nil {
		return resp.Value{}, err
	}
	s.Set(key, args[1])
	return resp.Int(1), nil
}

// handleDelete succeeds whether or not the key existed.
func handleDelete(s Store, args []resp.Value) (resp.Value, error) {
	key, err := keyOf(args[0])
	if err != nil {
		return resp.Value{}, err
	}
	s.Delete(key)
	return resp.Int(1), nil
}

func handleFlush(s Store, _ []resp.Value) (resp.Value, error) {
	return resp.Int(int64(s.Flush())), nil
}

func handleMGet(s Store, args []resp.Value) (resp.Value, error) {
	keys := make([]string, len(args))
	for i, a := range args {
		k, err := keyOf(a)
		if err != nil {
			return resp.Value{}, err
		}
		keys[i] = k
	}
	return resp.Array(s.MGet(keys)...), nil
}

func handleMSet(s Store, args []resp.Value) (resp.Value, error) {
	// Checked before pairing: truncating would silently drop the last key.
	if len(args)%2 != 0 {
		return resp.Value{}, domain.ErrUnpairedKey
	}

	pairs := make([]memory.Pair, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		k, err := keyOf(args[i])
		if err != nil {
			return resp.Value{}, err
		}
		pairs = append(pairs, memory.Pair{Key: k, Value: args[i+1]})
	}
	return resp.Int(int64(s.MSet(pairs))), nil
}
