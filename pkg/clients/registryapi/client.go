package registryapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	"github.com/releasetrain/releasetrain-api/pkg/api"
	"github.com/sethgrid/pester"
)

// Client communicates with the container registry api
//
//go:generate mockgen -package=registryapi -destination ./mock.go -source=client.go
type Client interface {
	GetToken(ctx context.Context, repository string) (token RegistryToken, err error)
	GetDigest(ctx context.Context, token RegistryToken, repository string, tag string) (digest ImageDigest, err error)
	HasTag(ctx context.Context, repository string, tag string) (exists bool, err error)
}

// NewClient returns a new registryapi.Client
func NewClient(config *api.APIConfig) Client {
	return &client{
		enabled: config != nil && config.Integrations != nil && config.Integrations.Registry != nil && config.Integrations.Registry.Enable,
		config:  config,
		tokens:  make(map[string]RegistryToken),
	}
}

type client struct {
	enabled bool
	config  *api.APIConfig
	tokens  map[string]RegistryToken
}

// GetToken fetches a pull-scoped bearer token for the repository
func (c *client) GetToken(ctx context.Context, repository string) (token RegistryToken, err error) {
	if !c.enabled {
		return
	}

	url := fmt.Sprintf("%v/token?service=registry.docker.io&scope=repository:%v:pull", c.config.Integrations.Registry.AuthURL, repository)

	response, err := pester.Get(url)
	if err != nil {
		return
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return
	}

	// unmarshal json body
	err = json.Unmarshal(body, &token)
	if err != nil {
		return
	}

	return
}

// GetDigest resolves the manifest digest the registry currently serves for a tag
func (c *client) GetDigest(ctx context.Context, token RegistryToken, repository string, tag string) (digest ImageDigest, err error) {
	if !c.enabled {
		return
	}

	url := fmt.Sprintf("%v/v2/%v/manifests/%v", c.config.Integrations.Registry.APIURL, repository, tag)

	// create client, in order to add headers
	client := pester.NewExtendedClient(&http.Client{Transport: &nethttp.Transport{}})
	client.MaxRetries = 3
	client.Backoff = pester.ExponentialJitterBackoff
	client.KeepLog = true
	client.Timeout = time.Second * 10
	request, err := http.NewRequest("HEAD", url, nil)
	if err != nil {
		return
	}

	span := opentracing.SpanFromContext(ctx)
	var ht *nethttp.Tracer
	if span != nil {
		// add tracing context
		request = request.WithContext(opentracing.ContextWithSpan(request.Context(), span))

		// collect additional information on setting up connections
		request, ht = nethttp.TraceRequest(span.Tracer(), request)
	}

	// add headers
	request.Header.Add("Authorization", fmt.Sprintf("%v %v", "Bearer", token.Token))
	request.Header.Add("Accept", "application/vnd.docker.distribution.manifest.v2+json")

	// perform actual request
	response, err := client.Do(request)
	if err != nil {
		return
	}
	defer response.Body.Close()
	if ht != nil {
		ht.Finish()
	}

	digest = ImageDigest{
		Digest:    response.Header.Get("Docker-Content-Digest"),
		ExpiresIn: 300,
		FetchedAt: time.Now().UTC(),
	}

	return
}

// HasTag reports whether the registry serves a manifest for the tag
func (c *client) HasTag(ctx context.Context, repository string, tag string) (exists bool, err error) {
	if !c.enabled {
		return
	}

	// fetch token from cache or renew
	if val, ok := c.tokens[repository]; !ok || val.IsExpired() {
		token, innerErr := c.GetToken(ctx, repository)
		if innerErr != nil {
			return false, innerErr
		}
		c.tokens[repository] = token
	}

	digest, err := c.GetDigest(ctx, c.tokens[repository], repository, tag)
	if err != nil {
		return
	}

	return digest.Digest != "", nil
}

// RegistryToken is a bearer token to authenticate requests with
type RegistryToken struct {
	Token     string    `json:"token"`
	ExpiresIn int       `json:"expires_in"`
	IssuedAt  time.Time `json:"issued_at"`
}

func (t *RegistryToken) ExpiresAt() time.Time {
	return t.IssuedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

func (t *RegistryToken) IsExpired() bool {
	return time.Now().UTC().After(t.ExpiresAt())
}

// ImageDigest is the digest the registry served for a repository tag
type ImageDigest struct {
	Digest    string
	ExpiresIn int
	FetchedAt time.Time
}

func (t *ImageDigest) ExpiresAt() time.Time {
	return t.FetchedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

func (t *ImageDigest) IsExpired() bool {
	return time.Now().UTC().After(t.ExpiresAt())
}
