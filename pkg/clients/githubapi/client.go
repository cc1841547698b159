package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	"github.com/releasetrain/releasetrain-api/pkg/api"
	"github.com/rs/zerolog/log"
	"github.com/sethgrid/pester"
)

// ErrReleaseAlreadyExists is returned when the tag already has a release record
var ErrReleaseAlreadyExists = errors.New("the tag already has a release record")

// Client is the interface for communicating with the github api
//
//go:generate mockgen -package=githubapi -destination ./mock.go -source=client.go
type Client interface {
	GetReleaseByTag(ctx context.Context, repoOwner, repoName, tag string) (release *Release, err error)
	CreateRelease(ctx context.Context, repoOwner, repoName, tag, name, notes string) (release *Release, err error)
}

// NewClient creates a githubapi.Client to communicate with the github api
func NewClient(config *api.APIConfig) Client {
	return &client{
		enabled: config != nil && config.Integrations != nil && config.Integrations.Github != nil && config.Integrations.Github.Enable,
		config:  config,
	}
}

type client struct {
	enabled bool
	config  *api.APIConfig
}

// GetReleaseByTag returns the release record for a tag, nil if the tag has none
func (c *client) GetReleaseByTag(ctx context.Context, repoOwner, repoName, tag string) (release *Release, err error) {
	if !c.enabled {
		return
	}

	url := fmt.Sprintf("%v/repos/%v/%v/releases/tags/%v", strings.TrimSuffix(c.config.Integrations.Github.APIURL, "/"), repoOwner, repoName, tag)

	statusCode, body, err := c.callGithubAPI(ctx, "GET", url, nil)
	if err != nil {
		return
	}
	if statusCode == http.StatusNotFound {
		return nil, nil
	}
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("retrieving release for tag %v failed with status code %v", tag, statusCode)
	}

	release = &Release{}

	// unmarshal json body
	err = json.Unmarshal(body, release)
	if err != nil {
		return nil, err
	}

	return
}

// CreateRelease creates an immutable, non-draft, non-prerelease release record
// for the tag; it fails if the tag already has one
func (c *client) CreateRelease(ctx context.Context, repoOwner, repoName, tag, name, notes string) (release *Release, err error) {
	if !c.enabled {
		return
	}

	existingRelease, err := c.GetReleaseByTag(ctx, repoOwner, repoName, tag)
	if err != nil {
		return
	}
	if existingRelease != nil {
		return nil, ErrReleaseAlreadyExists
	}

	url := fmt.Sprintf("%v/repos/%v/%v/releases", strings.TrimSuffix(c.config.Integrations.Github.APIURL, "/"), repoOwner, repoName)

	params := createReleaseRequest{
		TagName:    tag,
		Name:       name,
		Body:       notes,
		Draft:      false,
		Prerelease: false,
	}

	statusCode, body, err := c.callGithubAPI(ctx, "POST", url, params)
	if err != nil {
		return
	}
	if statusCode == http.StatusUnprocessableEntity {
		// the api rejects a second release for the same tag
		return nil, ErrReleaseAlreadyExists
	}
	if statusCode != http.StatusCreated {
		return nil, fmt.Errorf("creating release for tag %v failed with status code %v", tag, statusCode)
	}

	release = &Release{}

	// unmarshal json body
	err = json.Unmarshal(body, release)
	if err != nil {
		return nil, err
	}

	return
}

func (c *client) callGithubAPI(ctx context.Context, method, url string, params interface{}) (statusCode int, body []byte, err error) {

	// convert params to json if they're present
	var requestBody io.Reader
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return 0, body, err
		}
		requestBody = bytes.NewReader(data)
	}

	// create client, in order to add headers
	client := pester.NewExtendedClient(&http.Client{Transport: &nethttp.Transport{}})
	client.MaxRetries = 3
	client.Backoff = pester.ExponentialJitterBackoff
	client.KeepLog = true
	client.Timeout = time.Second * 10
	request, err := http.NewRequest(method, url, requestBody)
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
	request.Header.Add("Authorization", fmt.Sprintf("%v %v", "Bearer", c.config.Integrations.Github.Token))
	request.Header.Add("Accept", "application/vnd.github+json")

	// perform actual request
	response, err := client.Do(request)
	if err != nil {
		return
	}

	defer response.Body.Close()
	if ht != nil {
		ht.Finish()
	}

	statusCode = response.StatusCode

	body, err = io.ReadAll(response.Body)
	if err != nil {
		log.Error().Err(err).
			Str("url", url).
			Str("requestMethod", method).
			Msg("Reading response body for github api call failed")

		return
	}

	return
}
