package tempyrc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/noprobelm/tempy/internal/weatherapi"
)

// Recognized tempyrc keys. Anything else in the file is dropped on load.
const (
	KeyLocation = "location"
	KeyUnits    = "units"
	KeyAPIKey   = "api_key"
	KeyProxyURL = "proxy_url"
)

// Usage is the one-line invocation summary echoed in argument errors.
const Usage = "tempy <location> <optional args>"

// skel is written verbatim to the tempyrc path on first run. Every line is
// commented out, so a fresh file parses to an empty RC.
const skel = `# tempy defaults. Uncomment a line to set it; command line arguments take
# priority over anything found here.
#
# location = new york city
# units = imperial
# api_key =
# proxy_url =
`

// ConfigIOError reports a tempyrc that could not be read, created, or
// parsed. It is terminal for the invocation.
type ConfigIOError struct {
	Path string
	Err  error
}

func (e *ConfigIOError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigIOError) Unwrap() error { return e.Err }

// RC holds the raw values read from a tempyrc file. Keys absent from the
// file stay empty; nothing is validated at load time.
type RC struct {
	Location string
	Units    string
	APIKey   string
	ProxyURL string
}

// Args holds the values supplied on the command line, unvalidated.
type Args struct {
	Location string
	Units    string
	APIKey   string
}

// Config is the effective configuration for one invocation, produced by
// Effective from Args and RC.
type Config struct {
	Location string
	Units    weatherapi.Units
	APIKey   string
	ProxyURL string
}

// DefaultPath returns the per-user tempyrc location: <user config dir>/tempyrc,
// which is ~/.config/tempyrc on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", &ConfigIOError{Path: "tempyrc", Err: err}
	}
	return filepath.Join(dir, "tempyrc"), nil
}

// Load reads the tempyrc at path. A missing file is not an error: Load
// writes a commented skeleton there and returns an empty RC. An existing
// file that cannot be read, or whose contents are not key = value lines,
// yields a ConfigIOError.
func Load(path string) (RC, error) {
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return RC{}, &ConfigIOError{Path: path, Err: err}
		}
		if err := writeSkel(path); err != nil {
			return RC{}, &ConfigIOError{Path: path, Err: err}
		}
		return RC{}, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("dotenv")
	if err := v.ReadInConfig(); err != nil {
		return RC{}, &ConfigIOError{Path: path, Err: err}
	}

	return RC{
		Location: v.GetString(KeyLocation),
		Units:    v.GetString(KeyUnits),
		APIKey:   v.GetString(KeyAPIKey),
		ProxyURL: v.GetString(KeyProxyURL),
	}, nil
}

// writeSkel creates the skeleton tempyrc, making the parent directory when
// only it is missing. os.Mkdir rather than MkdirAll: a mistyped path must
// not grow a directory tree.
func writeSkel(path string) error {
	parent := filepath.Dir(path)
	if _, err := os.Stat(parent); errors.Is(err, fs.ErrNotExist) {
		if err := os.Mkdir(parent, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(skel), 0o644)
}

// Effective merges command line arguments over tempyrc values: for each
// key the argument wins when set. Units from either source are validated
// here, before any network traffic, and default to imperial. A location
// must come from one of the two sources.
func Effective(args Args, rc RC) (Config, error) {
	location := args.Location
	if location == "" {
		location = rc.Location
	}
	if location == "" {
		return Config{}, &weatherapi.InvalidArgumentError{
			Reason: fmt.Sprintf("'location' not provided in tempyrc or as command line arg. Usage: %s", Usage),
		}
	}

	raw := args.Units
	if raw == "" {
		raw = rc.Units
	}
	units, err := weatherapi.ParseUnits(raw)
	if err != nil {
		return Config{}, err
	}
	if units == "" {
		units = weatherapi.UnitsImperial
	}

	apiKey := args.APIKey
	if apiKey == "" {
		apiKey = rc.APIKey
	}

	return Config{
		Location: location,
		Units:    units,
		APIKey:   apiKey,
		ProxyURL: rc.ProxyURL,
	}, nil
}
