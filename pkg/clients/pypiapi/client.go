package pypiapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	foundation "github.com/estafette/estafette-foundation"
	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	"github.com/releasetrain/releasetrain-api/pkg/api"
	"github.com/rs/zerolog/log"
	"github.com/sethgrid/pester"
)

var (
	// ErrVersionAlreadyPublished is returned when the index rejects an upload
	// because the version exists; re-publishing requires manual intervention
	ErrVersionAlreadyPublished = errors.New("the package index already has this version")

	// ErrVersionNotAvailable is returned when the published version doesn't
	// become resolvable on the index within the polling timeout
	ErrVersionNotAvailable = errors.New("the version did not become available on the package index in time")
)

// Client communicates with the public package index
//
//go:generate mockgen -package=pypiapi -destination ./mock.go -source=client.go
type Client interface {
	GetPackageVersions(ctx context.Context, packageName string) (versions []string, err error)
	UploadPackage(ctx context.Context, packageName, version string, artifactPaths []string) (err error)
	AwaitVersionPublished(ctx context.Context, packageName, version string) (err error)
}

// NewClient returns a pypiapi.Client to communicate with the package index
func NewClient(config *api.APIConfig) Client {
	return &client{
		enabled: config != nil && config.Integrations != nil && config.Integrations.PackageIndex != nil && config.Integrations.PackageIndex.Enable,
		config:  config,
	}
}

type client struct {
	enabled bool
	config  *api.APIConfig
}

// GetPackageVersions returns all release versions the index lists for the package
func (c *client) GetPackageVersions(ctx context.Context, packageName string) (versions []string, err error) {
	if !c.enabled {
		return
	}

	url := fmt.Sprintf("%v/pypi/%v/json", strings.TrimSuffix(c.config.Integrations.PackageIndex.BaseURL, "/"), packageName)

	// create client, in order to add headers
	client := pester.NewExtendedClient(&http.Client{Transport: &nethttp.Transport{}})
	client.MaxRetries = 3
	client.Backoff = pester.ExponentialJitterBackoff
	client.KeepLog = true
	client.Timeout = time.Second * 10
	request, err := http.NewRequest("GET", url, nil)
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

	request.Header.Add("Accept", "application/json")

	// perform actual request
	response, err := client.Do(request)
	if err != nil {
		return
	}
	defer response.Body.Close()
	if ht != nil {
		ht.Finish()
	}

	// an unknown package has no listing yet, which just means zero versions
	if response.StatusCode == http.StatusNotFound {
		return []string{}, nil
	}
	if response.StatusCode != http.StatusOK {
		return versions, fmt.Errorf("retrieving versions for package %v from %v failed with status code %v", packageName, url, response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return
	}

	var listing packageListingResponse

	// unmarshal json body
	err = json.Unmarshal(body, &listing)
	if err != nil {
		return
	}

	versions = make([]string, 0, len(listing.Releases))
	for version := range listing.Releases {
		versions = append(versions, version)
	}
	sort.Strings(versions)

	return
}

// UploadPackage uploads the built artifacts for one version to the index
func (c *client) UploadPackage(ctx context.Context, packageName, version string, artifactPaths []string) (err error) {
	if !c.enabled {
		return
	}

	for _, artifactPath := range artifactPaths {
		err = c.uploadArtifact(ctx, packageName, version, artifactPath)
		if err != nil {
			return
		}
	}

	return nil
}

func (c *client) uploadArtifact(ctx context.Context, packageName, version, artifactPath string) (err error) {

	artifact, err := os.Open(artifactPath)
	if err != nil {
		return
	}
	defer artifact.Close()

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	fields := map[string]string{
		":action":          "file_upload",
		"protocol_version": "1",
		"name":             packageName,
		"version":          version,
	}
	for key, value := range fields {
		if err = writer.WriteField(key, value); err != nil {
			return
		}
	}

	part, err := writer.CreateFormFile("content", filepath.Base(artifactPath))
	if err != nil {
		return
	}
	if _, err = io.Copy(part, artifact); err != nil {
		return
	}
	if err = writer.Close(); err != nil {
		return
	}

	// create client, in order to add headers
	client := pester.NewExtendedClient(&http.Client{Transport: &nethttp.Transport{}})
	client.MaxRetries = 1
	client.Timeout = time.Second * 120
	request, err := http.NewRequest("POST", c.config.Integrations.PackageIndex.UploadURL, &buffer)
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

	// the index authenticates uploads with a token credential
	request.SetBasicAuth("__token__", c.config.Integrations.PackageIndex.Token)
	request.Header.Add("Content-Type", writer.FormDataContentType())

	// perform actual request
	response, err := client.Do(request)
	if err != nil {
		return
	}
	defer response.Body.Close()
	if ht != nil {
		ht.Finish()
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return
	}

	if response.StatusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(string(body)), "already exists") {
		return ErrVersionAlreadyPublished
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("uploading %v to %v failed with status code %v: %v", filepath.Base(artifactPath), c.config.Integrations.PackageIndex.UploadURL, response.StatusCode, string(body))
	}

	return nil
}

// AwaitVersionPublished polls the index version listing until the exact version
// shows up; the index has publish-to-visibility propagation delay, so dependents
// must not proceed before consumers can actually install the version
func (c *client) AwaitVersionPublished(ctx context.Context, packageName, version string) (err error) {
	if !c.enabled {
		return
	}

	pollInterval := c.config.Integrations.PackageIndex.PollIntervalSeconds
	pollTimeout := c.config.Integrations.PackageIndex.PollTimeoutSeconds
	attempts := uint(pollTimeout / pollInterval)
	if attempts < 1 {
		attempts = 1
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(pollTimeout)*time.Second)
	defer cancel()

	err = foundation.Retry(func() error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		versions, innerErr := c.GetPackageVersions(ctx, packageName)
		if innerErr != nil {
			return innerErr
		}

		for _, v := range versions {
			if v == version {
				return nil
			}
		}

		log.Debug().Msgf("Version %v of package %v is not visible on the index yet, sleeping %v seconds", version, packageName, pollInterval)

		return ErrVersionNotAvailable
	}, foundation.Attempts(attempts), foundation.DelayMillisecond(1000*pollInterval), foundation.Fixed())

	if err != nil {
		return ErrVersionNotAvailable
	}

	return nil
}

type packageListingResponse struct {
	Info     packageInfo                `json:"info"`
	Releases map[string][]packageUpload `json:"releases"`
}

type packageInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type packageUpload struct {
	Filename    string    `json:"filename"`
	PackageType string    `json:"packagetype"`
	UploadTime  time.Time `json:"upload_time_iso_8601"`
}
