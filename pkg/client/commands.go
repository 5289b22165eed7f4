package client

import (
	"context"
	"fmt"

	"github.com/yndnr/respkv/pkg/resp"
)

// Get returns the value of key. found is false when the key is absent.
func (c *Client) Get(ctx context.Context, key string) (value string, found bool, err error) {
	v, err := c.Execute(ctx, "GET", key)
	if err != nil {
		return "", false, err
	}
	switch v.Kind() {
	case resp.KindNull:
		return "", false, nil
	case resp.KindString:
		return v.Str(), true, nil
	}
	return "", false, unexpected("GET", v)
}

// Set stores value under key.
func (c *Client) Set(ctx context.Context, key, value string) error {
	_, err := c.integer(ctx, "SET", key, value)
	return err
}

// Delete removes key. The server reports success whether or not it existed.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.integer(ctx, "DELETE", key)
	return err
}

// Flush removes every key and returns how many there were.
func (c *Client) Flush(ctx context.Context) (int64, error) {
	return c.integer(ctx, "FLUSH")
}

// MGet returns the values of keys in order; missing keys yield Null.
func (c *Client) MGet(ctx context.Context, keys ...string) ([]resp.Value, error) {
	args := append([]string{"MGET"}, keys...)
	v, err := c.Execute(ctx, args...)
	if err != nil {
		return nil, err
	}
	if v.Kind() != resp.KindArray {
		return nil, unexpected("MGET", v)
	}
	return v.Elems(), nil
}

// MSet stores alternating key, value pairs and returns the number of pairs.
func (c *Client) MSet(ctx context.Context, kvs ...string) (int64, error) {
	args := append([]string{"MSET"}, kvs...)
	return c.integer(ctx, args...)
}

func (c *Client) integer(ctx context.Context, args ...string) (int64, error) {
	v, err := c.Execute(ctx, args...)
	if err != nil {
		return 0, err
	}
	if v.Kind() != resp.KindInteger {
		return 0, unexpected(args[0], v)
	}
	return v.Int(), nil
}

func unexpected(cmd string, v resp.Value) error {
	return fmt.Errorf("%w to %s: %s", ErrUnexpectedReply, cmd, v.Kind())
}
