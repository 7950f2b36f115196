package cli

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noprobelm/tempy/internal/report"
	"github.com/noprobelm/tempy/internal/tempyrc"
	"github.com/noprobelm/tempy/internal/weatherapi"
)

// rateLimitHint replaces the bare 429 from the shared proxy with something
// actionable.
const rateLimitHint = "Rate limit exceeded. Try again in a few minutes.\n" +
	"If you feel the rate limit is too strict, create an issue at github.com/noprobelm/tempy"

// Options are seams for tests: a fixed tempyrc path and a stubbed
// endpoint or transport. Zero values mean production behavior.
type Options struct {
	ConfigPath string
	Endpoint   string
	HTTPClient *http.Client
}

// NewRootCmd builds the tempy command. Location words are positional;
// units and API key arrive as flags and override the tempyrc.
func NewRootCmd(opts Options) *cobra.Command {
	var units, key string

	cmd := &cobra.Command{
		Use:   "tempy <location>",
		Short: "Render current and near future weather as rich text to your terminal",
		Long: "Tempy fetches current conditions and a short forecast for a location\n" +
			"and renders them as rich text to your terminal.\n\n" +
			"The location may be a city name or a US/UK/Canadian postal code. Defaults\n" +
			"for the location, units and API key live in a tempyrc file in your user\n" +
			"config directory; command line arguments take priority over it.",
		Example: "  tempy new york city\n  tempy paris --units metric",
		Args:    cobra.ArbitraryArgs,
		// Errors are reported once, by main.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args, units, key)
		},
	}

	cmd.Flags().StringVarP(&units, "units", "u", "", "measurement system to render (imperial or metric)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "weatherapi.com API key for direct requests")

	return cmd
}

func run(cmd *cobra.Command, opts Options, locationWords []string, units, key string) error {
	path := opts.ConfigPath
	if path == "" {
		var err error
		if path, err = tempyrc.DefaultPath(); err != nil {
			return err
		}
	}

	rc, err := tempyrc.Load(path)
	if err != nil {
		return err
	}

	cfg, err := tempyrc.Effective(tempyrc.Args{
		Location: strings.Join(locationWords, " "),
		Units:    units,
		APIKey:   key,
	}, rc)
	if err != nil {
		return err
	}

	client := weatherapi.New(weatherapi.Options{
		APIKey:     cfg.APIKey,
		Endpoint:   opts.Endpoint,
		ProxyURL:   cfg.ProxyURL,
		HTTPClient: opts.HTTPClient,
	})

	fc, err := client.Forecast(cmd.Context(), weatherapi.Query{Location: cfg.Location, Units: cfg.Units})
	if err != nil {
		var apiErr *weatherapi.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusTooManyRequests && cfg.APIKey == "" {
			return errors.New(rateLimitHint)
		}
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Render(report.Build(fc, cfg.Units)))
	return nil
}
