package influx

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/influxdata/influxdb/models"
	jsoniter "github.com/json-iterator/go"
)

// HTTPClient talks to the InfluxDB 1.x HTTP API.
type HTTPClient struct {
	addr      string
	username  string
	password  string
	userAgent string
	timeout   time.Duration
	tlsConfig *tls.Config

	client *http.Client
}

func NewHTTPClient(addr string, opts ...HTTPClientOption) (*HTTPClient, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return nil, err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported protocol scheme %q, expected http or https", u.Scheme)
	}

	c := &HTTPClient{
		addr:      strings.TrimSuffix(u.String(), "/"),
		userAgent: "ticks-release",
		timeout:   5 * time.Second,
	}

	for _, o := range opts {
		o(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
		Transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: c.tlsConfig,
		},
	}

	return c, nil
}

type HTTPClientOption func(*HTTPClient)

func WithTLSConfig(tlsConfig *tls.Config) HTTPClientOption {
	return func(c *HTTPClient) {
		c.tlsConfig = tlsConfig
	}
}

func WithBasicAuth(username, password string) HTTPClientOption {
	return func(c *HTTPClient) {
		c.username = username
		c.password = password
	}
}

func WithTimeout(timeout time.Duration) HTTPClientOption {
	return func(c *HTTPClient) {
		c.timeout = timeout
	}
}

func WithUserAgent(userAgent string) HTTPClientOption {
	return func(c *HTTPClient) {
		c.userAgent = userAgent
	}
}

// Write sends the points as line protocol in a single request.
func (c *HTTPClient) Write(database, retentionPolicy, precision string, points ...models.Point) error {
	if !IsSupportedPrecision(precision) {
		return fmt.Errorf("invalid precision %q", precision)
	}

	var body bytes.Buffer
	for _, p := range points {
		if p == nil {
			continue
		}

		body.WriteString(p.PrecisionString(precision))
		body.WriteByte('\n')
	}

	params := url.Values{}
	params.Set("db", database)
	params.Set("precision", precision)
	if retentionPolicy != "" {
		params.Set("rp", retentionPolicy)
	}

	req, err := http.NewRequest(http.MethodPost, c.addr+"/write?"+params.Encode(), &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK {
		return nil
	}

	return readWriteError(resp)
}

// Ping checks that the backend is reachable and returns its version.
func (c *HTTPClient) Ping() (string, error) {
	req, err := http.NewRequest(http.MethodGet, c.addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return "", readWriteError(resp)
	}

	return resp.Header.Get("X-Influxdb-Version"), nil
}

// CloseIdleConnections drops kept-alive connections to the backend.
func (c *HTTPClient) CloseIdleConnections() {
	c.client.CloseIdleConnections()
}

func (c *HTTPClient) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	return c.client.Do(req)
}

func readWriteError(resp *http.Response) error {
	writeErr := &WriteError{StatusCode: resp.StatusCode}

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return writeErr
	}

	var payload struct {
		Error string `json:"error"`
	}
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		writeErr.Message = payload.Error
		return writeErr
	}

	writeErr.Message = strings.TrimSpace(string(data))
	return writeErr
}
