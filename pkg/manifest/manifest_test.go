package manifest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reskit/reskit/pkg/resource"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "manifest.toml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

const sample = `
[resource]
name = "greeter"

[context]
name = "Bun"

[[api]]
route = "create"
method = "post"
action = "create"

[[api]]
route = "/hello"
action = "sayHello"
`

func TestLoadNormalizes(t *testing.T) {
	cfg, err := Load(writeManifest(t, sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Resource.Name != "greeter" {
		t.Fatalf("name = %q", cfg.Resource.Name)
	}
	if cfg.APIs[0].Route != "/create" || cfg.APIs[0].Method != "POST" {
		t.Fatalf("api 0 not normalized: %+v", cfg.APIs[0])
	}
	if cfg.APIs[1].Method != "GET" {
		t.Fatalf("api 1 method = %q, want GET default", cfg.APIs[1].Method)
	}
	if cfg.Context["name"] != "Bun" {
		t.Fatalf("context = %v", cfg.Context)
	}
}

func TestLoadRejectsBadManifests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "unknown method",
			body: "[resource]\nname = \"x\"\n[[api]]\nroute = \"/a\"\nmethod = \"PATCH\"\naction = \"a\"\n",
			want: "not recognized",
		},
		{
			name: "missing action",
			body: "[resource]\nname = \"x\"\n[[api]]\nroute = \"/a\"\n",
			want: "action is required",
		},
		{
			name: "missing route",
			body: "[resource]\nname = \"x\"\n[[api]]\naction = \"a\"\n",
			want: "route is required",
		},
		{
			name: "missing resource name",
			body: "[[api]]\nroute = \"/a\"\naction = \"a\"\n",
			want: "resource.name is required",
		},
		{
			name: "no api blocks",
			body: "[resource]\nname = \"x\"\n",
			want: "no api blocks",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeManifest(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestApplyWiresBuilder(t *testing.T) {
	cfg, err := Load(writeManifest(t, sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := resource.NewBuilder(cfg.Resource.Name).
		CreateAction("sayHello", func(ctx context.Context, rctx any, args ...any) (any, error) {
			name, _ := rctx.(map[string]any)["name"].(string)
			return "Hello, " + name + "!", nil
		})
	res := cfg.Apply(b).Build()

	out, err := res.CallAPI(context.Background(), "/hello", resource.MethodGet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Hello, Bun!" {
		t.Fatalf("got %v, want Hello, Bun!", out)
	}

	// "/create" aliases an action nobody registered; that is fine until called.
	if _, ok := res.GetAPI("/create", resource.MethodPost); !ok {
		t.Fatal("manifest api for unregistered action not applied")
	}
}
