package pypiapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/releasetrain/releasetrain-api/pkg/api"
	"github.com/stretchr/testify/assert"
)

func getConfig(baseURL, uploadURL string) *api.APIConfig {
	config := &api.APIConfig{
		Integrations: &api.APIConfigIntegrations{
			PackageIndex: &api.PackageIndexConfig{
				Enable:              true,
				BaseURL:             baseURL,
				UploadURL:           uploadURL,
				Token:               "pypi-token",
				PollIntervalSeconds: 1,
				PollTimeoutSeconds:  2,
			},
		},
	}

	return config
}

func TestGetPackageVersions(t *testing.T) {

	t.Run("ReturnsVersionsFromIndexListing", func(t *testing.T) {

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/pypi/elroy/json", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"info":{"name":"elroy","version":"1.2.3"},"releases":{"1.2.2":[],"1.2.3":[]}}`))
		}))
		defer server.Close()

		client := NewClient(getConfig(server.URL, server.URL+"/legacy/"))

		// act
		versions, err := client.GetPackageVersions(context.Background(), "elroy")

		assert.Nil(t, err)
		assert.Equal(t, []string{"1.2.2", "1.2.3"}, versions)
	})

	t.Run("ReturnsEmptyListForUnknownPackage", func(t *testing.T) {

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		client := NewClient(getConfig(server.URL, server.URL+"/legacy/"))

		// act
		versions, err := client.GetPackageVersions(context.Background(), "elroy")

		assert.Nil(t, err)
		assert.Equal(t, []string{}, versions)
	})
}

func TestUploadPackage(t *testing.T) {

	t.Run("PostsEachArtifactWithTokenCredential", func(t *testing.T) {

		uploads := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "__token__", username)
			assert.Equal(t, "pypi-token", password)

			assert.Nil(t, r.ParseMultipartForm(32<<20))
			assert.Equal(t, "file_upload", r.FormValue(":action"))
			assert.Equal(t, "elroy", r.FormValue("name"))
			assert.Equal(t, "1.2.3", r.FormValue("version"))

			uploads++
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		artifactPath := filepath.Join(t.TempDir(), "elroy-1.2.3-py3-none-any.whl")
		assert.Nil(t, os.WriteFile(artifactPath, []byte("not a real wheel"), 0600))

		client := NewClient(getConfig(server.URL, server.URL+"/legacy/"))

		// act
		err := client.UploadPackage(context.Background(), "elroy", "1.2.3", []string{artifactPath})

		assert.Nil(t, err)
		assert.Equal(t, 1, uploads)
	})

	t.Run("ReturnsErrVersionAlreadyPublishedForDuplicateVersion", func(t *testing.T) {

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("400 File already exists. See https://pypi.org/help/#file-name-reuse"))
		}))
		defer server.Close()

		artifactPath := filepath.Join(t.TempDir(), "elroy-1.2.3.tar.gz")
		assert.Nil(t, os.WriteFile(artifactPath, []byte("not a real sdist"), 0600))

		client := NewClient(getConfig(server.URL, server.URL+"/legacy/"))

		// act
		err := client.UploadPackage(context.Background(), "elroy", "1.2.3", []string{artifactPath})

		assert.NotNil(t, err)
		assert.ErrorIs(t, err, ErrVersionAlreadyPublished)
	})
}

func TestAwaitVersionPublished(t *testing.T) {

	t.Run("ReturnsNilOnceVersionIsListed", func(t *testing.T) {

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"info":{"name":"elroy","version":"1.2.3"},"releases":{"1.2.3":[]}}`))
		}))
		defer server.Close()

		client := NewClient(getConfig(server.URL, server.URL+"/legacy/"))

		// act
		err := client.AwaitVersionPublished(context.Background(), "elroy", "1.2.3")

		assert.Nil(t, err)
	})

	t.Run("ReturnsErrVersionNotAvailableWhenVersionNeverShowsUp", func(t *testing.T) {

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"info":{"name":"elroy","version":"1.2.2"},"releases":{"1.2.2":[]}}`))
		}))
		defer server.Close()

		client := NewClient(getConfig(server.URL, server.URL+"/legacy/"))

		// act
		err := client.AwaitVersionPublished(context.Background(), "elroy", "1.2.3")

		assert.NotNil(t, err)
		assert.ErrorIs(t, err, ErrVersionNotAvailable)
	})
}
