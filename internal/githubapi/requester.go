package githubapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/cli/go-gh/v2/pkg/api"
)

const (
	anonymousEndpointTemplateConstant = "https://api.%s/"
	acceptHeaderNameConstant          = "Accept"
	acceptHeaderValueConstant         = "application/vnd.github+json"
	contentTypeHeaderNameConstant     = "Content-Type"
	contentTypeHeaderValueConstant    = "application/json; charset=utf-8"
	httpSchemePrefixConstant          = "http://"
	httpsSchemePrefixConstant         = "https://"
)

// restRequester is the minimal request surface shared by the authenticated
// go-gh client and the anonymous fallback.
type restRequester interface {
	RequestWithContext(executionContext context.Context, method string, path string, body io.Reader) (*http.Response, error)
}

// anonymousRESTRequester issues unauthenticated GitHub API requests. go-gh
// refuses to construct a client without a resolvable token, so public-only
// lookups carry their own thin transport while reusing go-gh's error shape.
type anonymousRESTRequester struct {
	httpClient *http.Client
	endpoint   string
}

func newAnonymousRESTRequester(host string, transport http.RoundTripper) *anonymousRESTRequester {
	return &anonymousRESTRequester{
		httpClient: &http.Client{Transport: transport},
		endpoint:   strings.Replace(anonymousEndpointTemplateConstant, "%s", host, 1),
	}
}

// RequestWithContext performs the HTTP exchange and normalizes non-success
// statuses into *api.HTTPError, matching the authenticated client.
func (requester *anonymousRESTRequester) RequestWithContext(executionContext context.Context, method string, path string, body io.Reader) (*http.Response, error) {
	requestURL := path
	if !strings.HasPrefix(path, httpsSchemePrefixConstant) && !strings.HasPrefix(path, httpSchemePrefixConstant) {
		requestURL = requester.endpoint + path
	}

	request, requestError := http.NewRequestWithContext(executionContext, method, requestURL, body)
	if requestError != nil {
		return nil, requestError
	}

	request.Header.Set(acceptHeaderNameConstant, acceptHeaderValueConstant)
	if body != nil {
		request.Header.Set(contentTypeHeaderNameConstant, contentTypeHeaderValueConstant)
	}

	response, executionError := requester.httpClient.Do(request)
	if executionError != nil {
		return nil, executionError
	}

	if response.StatusCode >= http.StatusOK && response.StatusCode < http.StatusMultipleChoices {
		return response, nil
	}

	defer response.Body.Close()
	return nil, httpErrorFromResponse(response)
}

func httpErrorFromResponse(response *http.Response) error {
	httpError := &api.HTTPError{
		StatusCode: response.StatusCode,
		RequestURL: response.Request.URL,
		Headers:    response.Header,
	}

	payload, readError := io.ReadAll(response.Body)
	if readError == nil && len(payload) > 0 {
		var parsed struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(payload, &parsed) == nil {
			httpError.Message = parsed.Message
		}
	}

	if len(httpError.Message) == 0 {
		httpError.Message = response.Status
	}

	return httpError
}
