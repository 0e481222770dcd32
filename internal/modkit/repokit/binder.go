package repokit

// Binder is a tiny factory that binds a domain repo to a specific KV
type Binder[T any] interface {
	Bind(KV) T
}

// BindFunc lets you create a Binder from a function
type BindFunc[T any] func(KV) T

// Bind calls the underlying function
func (f BindFunc[T]) Bind(kv KV) T { return f(kv) }

// RequireKV panics early on programmer error (nil kv)
func RequireKV(kv KV) KV {
	if kv == nil {
		panic("repokit: nil KV")
	}
	return kv
}

// MustBind is a convenience that validates kv then binds
func MustBind[T any](b Binder[T], kv KV) T {
	return b.Bind(RequireKV(kv))
}
