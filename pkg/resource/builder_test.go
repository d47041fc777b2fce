package resource

import (
	"context"
	"testing"
)

func TestBuildDefaultContext(t *testing.T) {
	res := NewBuilder("users").Build()
	m, ok := res.Context().(map[string]any)
	if !ok {
		t.Fatalf("default context = %T, want map[string]any", res.Context())
	}
	if len(m) != 0 {
		t.Fatalf("default context not empty: %v", m)
	}
}

func TestSetContextLastWriteWins(t *testing.T) {
	res := NewBuilder("users").
		SetContext(map[string]any{"name": "first"}).
		SetContext(map[string]any{"name": "second"}).
		Build()
	m := res.Context().(map[string]any)
	if m["name"] != "second" {
		t.Fatalf("context name = %v, want second", m["name"])
	}
}

func TestBuilderMutationDoesNotReachBuiltResource(t *testing.T) {
	b := NewBuilder("users").
		SetContext(map[string]any{"v": 1}).
		CreateAction("a", func(ctx context.Context, rctx any, args ...any) (any, error) {
			return "a", nil
		})
	res := b.Build()

	b.SetContext(map[string]any{"v": 2})
	b.CreateAction("b", func(ctx context.Context, rctx any, args ...any) (any, error) {
		return "b", nil
	})
	b.AddAPI("/b", "b")

	if got := res.Context().(map[string]any)["v"]; got != 1 {
		t.Fatalf("context v = %v, want 1", got)
	}
	if _, ok := res.GetAction("b"); ok {
		t.Fatal("post-build CreateAction leaked into resource")
	}
	if _, ok := res.GetAPI("/b", MethodGet); ok {
		t.Fatal("post-build AddAPI leaked into resource")
	}
}

func TestCreateActionReplaces(t *testing.T) {
	res := NewBuilder("users").
		CreateAction("v", func(ctx context.Context, rctx any, args ...any) (any, error) {
			return "old", nil
		}).
		CreateAction("v", func(ctx context.Context, rctx any, args ...any) (any, error) {
			return "new", nil
		}).
		Build()
	out, err := res.CallAction(context.Background(), "v")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "new" {
		t.Fatalf("got %v, want new", out)
	}
}

func TestAddAPIDefaultsToGet(t *testing.T) {
	res := NewBuilder("users").AddAPI("/list", "list").Build()
	a, ok := res.GetAPI("/list", MethodGet)
	if !ok {
		t.Fatal("route not resolvable under GET")
	}
	if a.Action != "list" || a.Method != MethodGet {
		t.Fatalf("unexpected entry: %+v", a)
	}
}

func TestAddAPIReplaces(t *testing.T) {
	res := NewBuilder("users").
		AddAPI("/x", "first", MethodPost).
		AddAPI("/x", "second", MethodPut).
		Build()
	if _, ok := res.GetAPI("/x", MethodPost); ok {
		t.Fatal("replaced route still resolvable under old method")
	}
	a, ok := res.GetAPI("/x", MethodPut)
	if !ok {
		t.Fatal("route not resolvable after replacement")
	}
	if a.Action != "second" {
		t.Fatalf("action = %q, want second", a.Action)
	}
}

func TestWithContextYieldsNewResource(t *testing.T) {
	res := NewBuilder("users").
		SetContext(map[string]any{"name": "Bun"}).
		CreateAction("whoami", func(ctx context.Context, rctx any, args ...any) (any, error) {
			return rctx.(map[string]any)["name"], nil
		}).
		Build()

	res2 := res.WithContext(map[string]any{"name": "Deno"})

	out, err := res.CallAction(context.Background(), "whoami")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Bun" {
		t.Fatalf("original resource context changed: %v", out)
	}
	out2, err := res2.CallAction(context.Background(), "whoami")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out2 != "Deno" {
		t.Fatalf("replaced context not visible: %v", out2)
	}
}

func TestWithContextNilFallsBackToEmptyMap(t *testing.T) {
	res := NewBuilder("users").SetContext(map[string]any{"k": "v"}).Build()
	res2 := res.WithContext(nil)
	m, ok := res2.Context().(map[string]any)
	if !ok || len(m) != 0 {
		t.Fatalf("context = %#v, want empty map", res2.Context())
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
		ok   bool
	}{
		{"", MethodGet, true},
		{"get", MethodGet, true},
		{" POST ", MethodPost, true},
		{"Put", MethodPut, true},
		{"DELETE", MethodDelete, true},
		{"PATCH", "", false},
		{"HEAD", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseMethod(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMethod(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
