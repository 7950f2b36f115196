package tempyrc_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/noprobelm/tempy/internal/tempyrc"
	"github.com/noprobelm/tempy/internal/weatherapi"
)

func writeRC(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tempyrc")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPermutations(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     tempyrc.RC
	}{
		{name: "empty", contents: "", want: tempyrc.RC{}},
		{
			name:     "location",
			contents: "location = nyc\n",
			want:     tempyrc.RC{Location: "nyc"},
		},
		{
			name:     "location_units",
			contents: "location = nyc\nunits = imperial\n",
			want:     tempyrc.RC{Location: "nyc", Units: "imperial"},
		},
		{
			name:     "location_units_api",
			contents: "location = nyc\nunits = imperial\napi_key = jlskdjfaklejaeglkw\n",
			want:     tempyrc.RC{Location: "nyc", Units: "imperial", APIKey: "jlskdjfaklejaeglkw"},
		},
		{
			name:     "units_api",
			contents: "units = imperial\napi_key = jlskdjfaklejaeglkw\n",
			want:     tempyrc.RC{Units: "imperial", APIKey: "jlskdjfaklejaeglkw"},
		},
		{
			name:     "api",
			contents: "api_key = jlskdjfaklejaeglkw\n",
			want:     tempyrc.RC{APIKey: "jlskdjfaklejaeglkw"},
		},
		{
			name:     "units",
			contents: "units = imperial\n",
			want:     tempyrc.RC{Units: "imperial"},
		},
		{
			name:     "location_api",
			contents: "location = nyc\napi_key = jlskdjfaklejaeglkw\n",
			want:     tempyrc.RC{Location: "nyc", APIKey: "jlskdjfaklejaeglkw"},
		},
		{
			name:     "multi word location",
			contents: "location = new york city\n",
			want:     tempyrc.RC{Location: "new york city"},
		},
		{
			name:     "proxy override",
			contents: "proxy_url = http://localhost:8470\n",
			want:     tempyrc.RC{ProxyURL: "http://localhost:8470"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tempyrc.Load(writeRC(t, tt.contents))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadIgnoresCommentsAndUnknownKeys(t *testing.T) {
	path := writeRC(t, strings.Join([]string{
		"# location = somewhere commented out",
		"units = imperial",
		"invalid = should be dropped",
		"api_key = jlskdjfaklejaeglkw",
	}, "\n"))

	got, err := tempyrc.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := tempyrc.RC{Units: "imperial", APIKey: "jlskdjfaklejaeglkw"}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadCreatesSkeleton(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tempyrc")

	got, err := tempyrc.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != (tempyrc.RC{}) {
		t.Errorf("first Load() = %+v, want empty RC", got)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("skeleton not written: %v", err)
	}

	// The skeleton is all comments, so a second load still yields defaults.
	got, err = tempyrc.Load(path)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if got != (tempyrc.RC{}) {
		t.Errorf("reload = %+v, want empty RC", got)
	}
}

func TestLoadCreatesMissingParentDir(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "config")
	path := filepath.Join(parent, "tempyrc")

	if _, err := tempyrc.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(parent); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("skeleton not written: %v", err)
	}
}

func TestLoadRefusesRecursiveMkdir(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "missing", "config")
	path := filepath.Join(parent, "tempyrc")

	_, err := tempyrc.Load(path)
	var cfgErr *tempyrc.ConfigIOError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want ConfigIOError", err)
	}
	if _, err := os.Stat(parent); !os.IsNotExist(err) {
		t.Errorf("parent dir was created recursively")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeRC(t, "this line has no separator\n")

	_, err := tempyrc.Load(path)
	var cfgErr *tempyrc.ConfigIOError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want ConfigIOError", err)
	}
}

func TestEffective(t *testing.T) {
	tests := []struct {
		name string
		args tempyrc.Args
		rc   tempyrc.RC
		want tempyrc.Config
	}{
		{
			name: "args beat tempyrc",
			args: tempyrc.Args{Location: "chicago", Units: "metric", APIKey: "argkey"},
			rc:   tempyrc.RC{Location: "nyc", Units: "imperial", APIKey: "rckey"},
			want: tempyrc.Config{Location: "chicago", Units: weatherapi.UnitsMetric, APIKey: "argkey"},
		},
		{
			name: "tempyrc fills what args omit",
			args: tempyrc.Args{},
			rc:   tempyrc.RC{Location: "nyc", Units: "metric", APIKey: "rckey"},
			want: tempyrc.Config{Location: "nyc", Units: weatherapi.UnitsMetric, APIKey: "rckey"},
		},
		{
			name: "units default to imperial",
			args: tempyrc.Args{Location: "nyc"},
			rc:   tempyrc.RC{},
			want: tempyrc.Config{Location: "nyc", Units: weatherapi.UnitsImperial},
		},
		{
			name: "units flag overrides tempyrc units",
			args: tempyrc.Args{Location: "nyc", Units: "metric"},
			rc:   tempyrc.RC{Units: "imperial"},
			want: tempyrc.Config{Location: "nyc", Units: weatherapi.UnitsMetric},
		},
		{
			name: "proxy url carried through",
			args: tempyrc.Args{Location: "nyc"},
			rc:   tempyrc.RC{ProxyURL: "http://localhost:8470"},
			want: tempyrc.Config{Location: "nyc", Units: weatherapi.UnitsImperial, ProxyURL: "http://localhost:8470"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tempyrc.Effective(tt.args, tt.rc)
			if err != nil {
				t.Fatalf("Effective() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Effective() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEffectiveErrors(t *testing.T) {
	tests := []struct {
		name string
		args tempyrc.Args
		rc   tempyrc.RC
	}{
		{name: "no location anywhere", args: tempyrc.Args{Units: "metric"}, rc: tempyrc.RC{Units: "imperial"}},
		{name: "bad units from args", args: tempyrc.Args{Location: "nyc", Units: "lkf"}, rc: tempyrc.RC{}},
		{name: "bad units from tempyrc", args: tempyrc.Args{Location: "nyc"}, rc: tempyrc.RC{Units: "kelvin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tempyrc.Effective(tt.args, tt.rc)
			var invalid *weatherapi.InvalidArgumentError
			if !errors.As(err, &invalid) {
				t.Fatalf("error = %v, want InvalidArgumentError", err)
			}
		})
	}
}
