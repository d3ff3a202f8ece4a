package hxconnect

import (
	"context"

	"github.com/pthm/hxconnect/lib/componentstate"
)

type ctxKey int

const (
	storeKey ctxKey = iota
	registryKey
)

// StorePropName is the own prop that overrides the store from context.
const StorePropName = "store"

// WithStore returns a context carrying s for bindings created beneath it.
func WithStore(ctx context.Context, s Store) context.Context {
	return context.WithValue(ctx, storeKey, s)
}

// StoreFrom returns the store carried by ctx, or nil.
func StoreFrom(ctx context.Context) Store {
	s, _ := ctx.Value(storeKey).(Store)
	return s
}

// WithRegistry returns a context carrying reg for stores that do not
// implement RegistryProvider.
func WithRegistry(ctx context.Context, reg *componentstate.Registry) context.Context {
	return context.WithValue(ctx, registryKey, reg)
}

// RegistryFrom returns the registry carried by ctx, or nil.
func RegistryFrom(ctx context.Context) *componentstate.Registry {
	reg, _ := ctx.Value(registryKey).(*componentstate.Registry)
	return reg
}

func resolveStore(ctx context.Context, own Props) Store {
	if s, ok := own[StorePropName].(Store); ok && s != nil {
		return s
	}
	if ctx == nil {
		return nil
	}
	return StoreFrom(ctx)
}

func resolveRegistry(ctx context.Context, s Store) *componentstate.Registry {
	if p, ok := s.(RegistryProvider); ok {
		if reg := p.ComponentRegistry(); reg != nil {
			return reg
		}
	}
	if ctx == nil {
		return nil
	}
	return RegistryFrom(ctx)
}
