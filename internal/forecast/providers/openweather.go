package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/forecast-compare/internal/forecast"
)

// DefaultOpenWeatherBaseURL is the public OpenWeather API host.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org"

// Option customizes an OpenWeather client.
type Option func(*openWeatherClient)

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *openWeatherClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRateLimit sets the outbound request rate. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *openWeatherClient) {
		if rps <= 0 {
			c.httpCfg.Limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.httpCfg.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n int) Option {
	return func(c *openWeatherClient) {
		if n < 0 {
			n = 0
		}
		c.httpCfg.Backoff.MaxRetries = n
	}
}

type openWeatherClient struct {
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func newOpenWeatherClient(name string, client *http.Client, apiKey string, opts []Option) openWeatherClient {
	c := openWeatherClient{
		apiKey:  apiKey,
		baseURL: DefaultOpenWeatherBaseURL,
		httpCfg: defaultHTTPConfig(client),
		circuit: newCircuitBreaker(name),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c *openWeatherClient) get(ctx context.Context, path string, values url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}
	values.Set("appid", c.apiKey)
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())

	return fetchBody(ctx, c.httpCfg, c.circuit, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	})
}

// OpenWeatherProvider implements forecast.ForecastSource. Coordinates use
// the OneCall daily forecast; place names use the 5 day / 3 hour forecast.
type OpenWeatherProvider struct {
	openWeatherClient
}

var _ forecast.ForecastSource = (*OpenWeatherProvider)(nil)

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...Option) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		openWeatherClient: newOpenWeatherClient("openweather", client, apiKey, opts),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return "openweathermap"
}

func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, loc forecast.Location) (forecast.LocationForecast, error) {
	var (
		path  string
		shape forecast.Shape
	)
	values := url.Values{}

	switch {
	case loc.HasCoordinates():
		path = "/data/3.0/onecall"
		shape = forecast.ShapeDaily
		values.Set("lat", formatCoord(*loc.Lat))
		values.Set("lon", formatCoord(*loc.Lon))
		values.Set("exclude", "current,minutely,hourly,alerts")
	case loc.Name != "":
		path = "/data/2.5/forecast"
		shape = forecast.ShapeThreeHourly
		values.Set("q", loc.Name)
	default:
		return forecast.LocationForecast{}, fmt.Errorf("location needs coordinates or a name")
	}

	body, err := p.get(ctx, path, values)
	if err != nil {
		return forecast.LocationForecast{}, err
	}
	return forecast.NormalizeResponse(body, shape)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
