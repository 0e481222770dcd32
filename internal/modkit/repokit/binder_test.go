package repokit

import (
	"testing"

	"inkarena/internal/platform/testkit"
)

type fakeRepo struct{ kv KV }

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("%s: expected panic, got none", name)
		}
	}()
	fn()
}

func TestBindFunc_BindCallsFunc(t *testing.T) {
	kv, _ := testkit.KV(t)

	var got KV
	b := BindFunc[fakeRepo](func(k KV) fakeRepo {
		got = k
		return fakeRepo{kv: k}
	})

	r := b.Bind(kv)
	if got == nil || r.kv == nil {
		t.Fatalf("Bind should pass the KV through to the factory")
	}
}

func TestRequireKV_PanicsOnNil(t *testing.T) {
	t.Parallel()
	mustPanic(t, "RequireKV(nil)", func() { RequireKV(nil) })
}

func TestMustBind_ValidatesThenBinds(t *testing.T) {
	kv, _ := testkit.KV(t)

	b := BindFunc[fakeRepo](func(k KV) fakeRepo { return fakeRepo{kv: k} })
	r := MustBind[fakeRepo](b, kv)
	if r.kv == nil {
		t.Fatalf("MustBind should bind against the provided KV")
	}

	mustPanic(t, "MustBind(nil KV)", func() { MustBind[fakeRepo](b, nil) })
}
