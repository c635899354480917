package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/cli/go-gh/v2/pkg/api"

	"github.com/tavrel/ghsweep/internal/repos/shared"
)

const (
	defaultAPIHostConstant                    = "github.com"
	repositoryEndpointTemplateConstant        = "repos/%s/%s"
	authenticatedRepositoriesEndpointConstant = "user/repos?per_page=100"
	userRepositoriesEndpointTemplateConstant  = "users/%s/repos?per_page=100"
	linkHeaderNameConstant                    = "Link"
	usernameFieldNameConstant                 = "username"
)

var nextPageLinkPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// Options configures client construction.
type Options struct {
	// AuthToken authenticates requests; when empty the client degrades to
	// anonymous access suitable only for public listings.
	AuthToken string
	// APIHost overrides the GitHub host, defaulting to github.com.
	APIHost string
	// HTTPTransport overrides the underlying transport, primarily for tests.
	HTTPTransport http.RoundTripper
}

// Client implements shared.RepositoryService over the GitHub REST API.
type Client struct {
	requester restRequester
}

// NewClient constructs a repository service client. Authenticated clients are
// built on go-gh; tokenless clients fall back to an anonymous requester.
func NewClient(options Options) (*Client, error) {
	host := strings.TrimSpace(options.APIHost)
	if len(host) == 0 {
		host = defaultAPIHostConstant
	}

	if len(strings.TrimSpace(options.AuthToken)) == 0 {
		return &Client{requester: newAnonymousRESTRequester(host, options.HTTPTransport)}, nil
	}

	restClient, clientError := api.NewRESTClient(api.ClientOptions{
		AuthToken: options.AuthToken,
		Host:      host,
		Transport: options.HTTPTransport,
	})
	if clientError != nil {
		return nil, clientError
	}

	return &Client{requester: restClient}, nil
}

// FetchStatus reports the current archival status of a repository. Not-found
// and forbidden API responses map to RepositoryStatusNotFound without error so
// inaccessible entries stay visible in plan previews.
func (client *Client) FetchStatus(executionContext context.Context, repository shared.OwnerRepository) (shared.RepositoryStatus, error) {
	endpoint := fmt.Sprintf(repositoryEndpointTemplateConstant, repository.Owner(), repository.Name())

	response, executionError := client.requester.RequestWithContext(executionContext, http.MethodGet, endpoint, nil)
	if executionError != nil {
		if isNotFoundOrForbidden(executionError) {
			return shared.RepositoryStatusNotFound, nil
		}
		return "", OperationError{Operation: fetchStatusOperationNameConstant, Cause: executionError}
	}

	var payload struct {
		Archived bool `json:"archived"`
	}
	if decodingError := decodeResponseBody(response, &payload, fetchStatusOperationNameConstant); decodingError != nil {
		return "", decodingError
	}

	if payload.Archived {
		return shared.RepositoryStatusArchived, nil
	}
	return shared.RepositoryStatusActive, nil
}

// ListRepositories enumerates every repository of the authenticated user.
func (client *Client) ListRepositories(executionContext context.Context) ([]shared.RepositorySummary, error) {
	return client.collectRepositoryPages(executionContext, authenticatedRepositoriesEndpointConstant, listRepositoriesOperationNameConstant)
}

// ListPublicRepositories enumerates the public repositories of a named user.
func (client *Client) ListPublicRepositories(executionContext context.Context, username string) ([]shared.RepositorySummary, error) {
	trimmedUsername := strings.TrimSpace(username)
	if len(trimmedUsername) == 0 {
		return nil, InvalidInputError{FieldName: usernameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	endpoint := fmt.Sprintf(userRepositoriesEndpointTemplateConstant, trimmedUsername)
	return client.collectRepositoryPages(executionContext, endpoint, listPublicRepositoriesOperationNameConstant)
}

// SetArchived toggles the archived flag on a repository.
func (client *Client) SetArchived(executionContext context.Context, repository shared.OwnerRepository, archived bool) error {
	payload := struct {
		Archived bool `json:"archived"`
	}{Archived: archived}

	encodedPayload, encodingError := json.Marshal(payload)
	if encodingError != nil {
		return OperationError{Operation: setArchivedOperationNameConstant, Cause: encodingError}
	}

	endpoint := fmt.Sprintf(repositoryEndpointTemplateConstant, repository.Owner(), repository.Name())
	response, executionError := client.requester.RequestWithContext(executionContext, http.MethodPatch, endpoint, bytes.NewReader(encodedPayload))
	if executionError != nil {
		return OperationError{Operation: setArchivedOperationNameConstant, Cause: executionError}
	}

	discardResponseBody(response)
	return nil
}

// DeleteRepository permanently removes a repository.
func (client *Client) DeleteRepository(executionContext context.Context, repository shared.OwnerRepository) error {
	endpoint := fmt.Sprintf(repositoryEndpointTemplateConstant, repository.Owner(), repository.Name())

	response, executionError := client.requester.RequestWithContext(executionContext, http.MethodDelete, endpoint, nil)
	if executionError != nil {
		return OperationError{Operation: deleteRepositoryOperationNameConstant, Cause: executionError}
	}

	discardResponseBody(response)
	return nil
}

// collectRepositoryPages consumes the paginated listing strictly forward, one
// page per request, following Link headers until exhausted.
func (client *Client) collectRepositoryPages(executionContext context.Context, firstPage string, operation OperationName) ([]shared.RepositorySummary, error) {
	summaries := []shared.RepositorySummary{}

	pageEndpoint := firstPage
	for len(pageEndpoint) > 0 {
		response, executionError := client.requester.RequestWithContext(executionContext, http.MethodGet, pageEndpoint, nil)
		if executionError != nil {
			return nil, OperationError{Operation: operation, Cause: executionError}
		}

		nextEndpoint := nextPageEndpoint(response)

		var page []struct {
			Name        string `json:"name"`
			FullName    string `json:"full_name"`
			Private     bool   `json:"private"`
			Archived    bool   `json:"archived"`
			Description string `json:"description"`
		}
		if decodingError := decodeResponseBody(response, &page, operation); decodingError != nil {
			return nil, decodingError
		}

		for _, entry := range page {
			summaries = append(summaries, shared.RepositorySummary{
				Name:        entry.Name,
				FullName:    entry.FullName,
				Private:     entry.Private,
				Archived:    entry.Archived,
				Description: entry.Description,
			})
		}

		pageEndpoint = nextEndpoint
	}

	return summaries, nil
}

func nextPageEndpoint(response *http.Response) string {
	linkHeader := response.Header.Get(linkHeaderNameConstant)
	if len(linkHeader) == 0 {
		return ""
	}
	matches := nextPageLinkPattern.FindStringSubmatch(linkHeader)
	if len(matches) < 2 {
		return ""
	}
	return matches[1]
}

func decodeResponseBody(response *http.Response, target any, operation OperationName) error {
	defer response.Body.Close()

	if decodingError := json.NewDecoder(response.Body).Decode(target); decodingError != nil {
		return ResponseDecodingError{Operation: operation, Cause: decodingError}
	}
	return nil
}

func discardResponseBody(response *http.Response) {
	if response == nil || response.Body == nil {
		return
	}
	io.Copy(io.Discard, response.Body)
	response.Body.Close()
}

func isNotFoundOrForbidden(candidate error) bool {
	var httpError *api.HTTPError
	if !errors.As(candidate, &httpError) {
		return false
	}
	return httpError.StatusCode == http.StatusNotFound || httpError.StatusCode == http.StatusForbidden
}
