package githubapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tavrel/ghsweep/internal/githubapi"
	"github.com/tavrel/ghsweep/internal/repos/shared"
)

const testAuthTokenConstant = "test-token"

type roundTripFunc func(request *http.Request) (*http.Response, error)

func (roundTrip roundTripFunc) RoundTrip(request *http.Request) (*http.Response, error) {
	return roundTrip(request)
}

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

func jsonResponse(request *http.Request, statusCode int, payload string, header http.Header) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	header.Set("Content-Type", "application/json; charset=utf-8")
	return &http.Response{
		StatusCode: statusCode,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(payload)),
		Request:    request,
	}
}

func newAuthenticatedClient(t *testing.T, roundTrip roundTripFunc) *githubapi.Client {
	t.Helper()

	client, clientError := githubapi.NewClient(githubapi.Options{
		AuthToken:     testAuthTokenConstant,
		HTTPTransport: roundTrip,
	})
	require.NoError(t, clientError)
	return client
}

func mustOwnerRepository(t *testing.T, raw string) shared.OwnerRepository {
	t.Helper()

	repository, parseError := shared.NewOwnerRepository(raw)
	require.NoError(t, parseError)
	return repository
}

func TestFetchStatusClassifiesResponses(t *testing.T) {
	testCases := []struct {
		name           string
		statusCode     int
		payload        string
		expectedStatus shared.RepositoryStatus
		expectError    bool
	}{
		{name: "active_repository", statusCode: http.StatusOK, payload: `{"archived":false}`, expectedStatus: shared.RepositoryStatusActive},
		{name: "archived_repository", statusCode: http.StatusOK, payload: `{"archived":true}`, expectedStatus: shared.RepositoryStatusArchived},
		{name: "not_found", statusCode: http.StatusNotFound, payload: `{"message":"Not Found"}`, expectedStatus: shared.RepositoryStatusNotFound},
		{name: "forbidden", statusCode: http.StatusForbidden, payload: `{"message":"Forbidden"}`, expectedStatus: shared.RepositoryStatusNotFound},
		{name: "server_error", statusCode: http.StatusInternalServerError, payload: `{"message":"boom"}`, expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			client := newAuthenticatedClient(t, func(request *http.Request) (*http.Response, error) {
				require.Equal(t, http.MethodGet, request.Method)
				require.True(t, strings.HasSuffix(request.URL.Path, "/repos/acme/widgets"))
				return jsonResponse(request, testCase.statusCode, testCase.payload, nil), nil
			})

			status, fetchError := client.FetchStatus(context.Background(), mustOwnerRepository(t, "acme/widgets"))
			if testCase.expectError {
				require.Error(t, fetchError)
				return
			}
			require.NoError(t, fetchError)
			require.Equal(t, testCase.expectedStatus, status)
		})
	}
}

func TestListRepositoriesFollowsPagination(t *testing.T) {
	client := newAuthenticatedClient(t, func(request *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, request.Method)

		if request.URL.Query().Get("page") == "2" {
			return jsonResponse(request, http.StatusOK, `[{"name":"beta","full_name":"acme/beta","private":true,"archived":true,"description":"second"}]`, nil), nil
		}

		header := http.Header{}
		header.Set("Link", `<https://api.github.com/user/repos?per_page=100&page=2>; rel="next"`)
		return jsonResponse(request, http.StatusOK, `[{"name":"alpha","full_name":"acme/alpha","private":false,"archived":false,"description":"first"}]`, header), nil
	})

	summaries, listError := client.ListRepositories(context.Background())
	require.NoError(t, listError)
	require.Equal(t, []shared.RepositorySummary{
		{Name: "alpha", FullName: "acme/alpha", Private: false, Archived: false, Description: "first"},
		{Name: "beta", FullName: "acme/beta", Private: true, Archived: true, Description: "second"},
	}, summaries)
}

func TestListPublicRepositoriesWithoutToken(t *testing.T) {
	var observed recordedRequest

	client, clientError := githubapi.NewClient(githubapi.Options{
		HTTPTransport: roundTripFunc(func(request *http.Request) (*http.Response, error) {
			observed = recordedRequest{Method: request.Method, Path: request.URL.Path}
			require.Empty(t, request.Header.Get("Authorization"))
			return jsonResponse(request, http.StatusOK, `[{"name":"site","full_name":"octocat/site","description":"pages"}]`, nil), nil
		}),
	})
	require.NoError(t, clientError)

	summaries, listError := client.ListPublicRepositories(context.Background(), "octocat")
	require.NoError(t, listError)
	require.Equal(t, http.MethodGet, observed.Method)
	require.Equal(t, "/users/octocat/repos", observed.Path)
	require.Len(t, summaries, 1)
	require.Equal(t, "octocat/site", summaries[0].FullName)
}

func TestListPublicRepositoriesRejectsBlankUsername(t *testing.T) {
	client := newAuthenticatedClient(t, func(request *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})

	_, listError := client.ListPublicRepositories(context.Background(), "   ")
	require.Error(t, listError)

	var invalidInput githubapi.InvalidInputError
	require.ErrorAs(t, listError, &invalidInput)
}

func TestSetArchivedSendsPatchPayload(t *testing.T) {
	var observed recordedRequest

	client := newAuthenticatedClient(t, func(request *http.Request) (*http.Response, error) {
		payload, readError := io.ReadAll(request.Body)
		require.NoError(t, readError)
		observed = recordedRequest{Method: request.Method, Path: request.URL.Path, Body: string(payload)}
		return jsonResponse(request, http.StatusOK, `{"archived":true}`, nil), nil
	})

	archiveError := client.SetArchived(context.Background(), mustOwnerRepository(t, "acme/widgets"), true)
	require.NoError(t, archiveError)
	require.Equal(t, http.MethodPatch, observed.Method)
	require.True(t, strings.HasSuffix(observed.Path, "/repos/acme/widgets"))

	var decodedBody struct {
		Archived bool `json:"archived"`
	}
	require.NoError(t, json.Unmarshal([]byte(observed.Body), &decodedBody))
	require.True(t, decodedBody.Archived)
}

func TestDeleteRepositoryIssuesDelete(t *testing.T) {
	var observed recordedRequest

	client := newAuthenticatedClient(t, func(request *http.Request) (*http.Response, error) {
		observed = recordedRequest{Method: request.Method, Path: request.URL.Path}
		return jsonResponse(request, http.StatusNoContent, "", nil), nil
	})

	deleteError := client.DeleteRepository(context.Background(), mustOwnerRepository(t, "acme/widgets"))
	require.NoError(t, deleteError)
	require.Equal(t, http.MethodDelete, observed.Method)
	require.True(t, strings.HasSuffix(observed.Path, "/repos/acme/widgets"))
}

func TestMutationFailuresSurfaceAPIMessage(t *testing.T) {
	client := newAuthenticatedClient(t, func(request *http.Request) (*http.Response, error) {
		return jsonResponse(request, http.StatusForbidden, `{"message":"Must have admin rights to Repository."}`, nil), nil
	})

	archiveError := client.SetArchived(context.Background(), mustOwnerRepository(t, "acme/widgets"), true)
	require.Error(t, archiveError)
	require.Contains(t, archiveError.Error(), "Must have admin rights")
}
