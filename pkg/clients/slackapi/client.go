package slackapi

import (
	"bytes"
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

// Client is the interface for communicating with the Slack api
//
//go:generate mockgen -package=slackapi -destination ./mock.go -source=client.go
type Client interface {
	PostMessage(ctx context.Context, channel, text string) (err error)
}

// NewClient returns a slackapi.Client to communicate with the Slack API
func NewClient(config *api.APIConfig) Client {
	return &client{
		enabled: config != nil && config.Integrations != nil && config.Integrations.Slack != nil && config.Integrations.Slack.Enable,
		config:  config,
		apiURL:  "https://slack.com/api",
	}
}

type client struct {
	enabled bool
	config  *api.APIConfig
	apiURL  string
}

// PostMessage posts a message to a channel using the bot credential
func (c *client) PostMessage(ctx context.Context, channel, text string) (err error) {
	if !c.enabled {
		return
	}

	url := fmt.Sprintf("%v/chat.postMessage", c.apiURL)

	params := postMessageRequest{
		Channel: channel,
		Text:    text,
	}
	data, err := json.Marshal(params)
	if err != nil {
		return
	}

	// create client, in order to add headers
	client := pester.NewExtendedClient(&http.Client{Transport: &nethttp.Transport{}})
	client.MaxRetries = 3
	client.Backoff = pester.ExponentialJitterBackoff
	client.KeepLog = true
	client.Timeout = time.Second * 10
	request, err := http.NewRequest("POST", url, bytes.NewReader(data))
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
	request.Header.Add("Authorization", fmt.Sprintf("%v %v", "Bearer", c.config.Integrations.Slack.BotToken))
	request.Header.Add("Content-Type", "application/json")

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

	var messageResponse postMessageResponse

	// unmarshal json body
	err = json.Unmarshal(body, &messageResponse)
	if err != nil {
		return
	}

	if !messageResponse.OK {
		return fmt.Errorf("posting message to channel %v failed: %v", channel, messageResponse.Error)
	}

	return nil
}
