package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aun009/resourcify/internal/domain"
	"github.com/aun009/resourcify/internal/session"
)

func testToken(t *testing.T, email string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Session) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	sess := session.Anonymous()
	return NewClient(srv.URL, sess, zap.NewNop()), sess
}

func TestLoginAuthenticatesSessionInPlace(t *testing.T) {
	token := testToken(t, "alice@example.com")
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var in loginInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "alice@example.com", in.Email)
		w.Write([]byte(token))
	}))

	got, err := client.Login(context.Background(), "alice@example.com", "Passw0rd")
	require.NoError(t, err)

	// Consumers holding the original session pointer see the login.
	assert.Same(t, sess, got)
	assert.True(t, sess.Valid())
	assert.Equal(t, "alice@example.com", sess.Email())
}

func TestBearerHeaderOnlyWhenAuthenticated(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	})

	client, sess := newTestClient(t, handler)
	_, err := client.Requests(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)

	require.NoError(t, sess.Authenticate(testToken(t, "alice@example.com")))
	_, err = client.Requests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+sess.Token(), gotAuth)
}

func TestMeUpdatesSessionIdentity(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Alice@Example.com\n"))
	}))
	require.NoError(t, sess.Authenticate(testToken(t, "alice@example.com")))

	email, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alice@Example.com", email)
	assert.Equal(t, "Alice@Example.com", sess.Email())
}

func TestRequestActionHitsActionPath(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(domain.Request{ID: 42, Status: domain.StatusInProgress})
	}))

	updated, err := client.RequestAction(context.Background(), 42, domain.ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, "/api/requests/42/accept", gotPath)
	assert.Equal(t, domain.StatusInProgress, updated.Status)
}

func TestRequestActionRejectsUnknownAction(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unknown action must not reach the backend")
	}))
	_, err := client.RequestAction(context.Background(), 1, domain.Action("explode"))
	assert.Error(t, err)
}

func TestNon2xxBecomesError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Request is not open", http.StatusBadRequest)
	}))

	_, err := client.RequestAction(context.Background(), 7, domain.ActionOffer)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Request is not open", apiErr.Message)
}

func TestSendMessageDefaultsToChatType(t *testing.T) {
	var got domain.Message
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		got.ID = 99
		json.NewEncoder(w).Encode(got)
	}))

	saved, err := client.SendMessage(context.Background(), domain.Message{
		Sender:    "alice@example.com",
		Recipient: "bob@example.com",
		Content:   "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageTypeChat, got.Type)
	assert.EqualValues(t, 99, saved.ID)
}

func TestPostResourceMultipart(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Ladder", r.FormValue("title"))
		assert.Equal(t, "Tool", r.FormValue("category"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "ladder.jpg", header.Filename)

		json.NewEncoder(w).Encode(domain.Resource{ID: 5, Title: "Ladder"})
	}))

	created, err := client.PostResource(context.Background(), NewResource{
		Title:     "Ladder",
		Category:  "Tool",
		Price:     "Free",
		ImageName: "ladder.jpg",
		Image:     strings.NewReader("jpegbytes"),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, created.ID)
}

func TestChatHistoryDecodesArrayTimestamps(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"sender":"bob@example.com","recipient":"alice@example.com","content":"hey","type":"CHAT","timestamp":[2025,3,14,9,26,53]}]`))
	}))

	msgs, err := client.ChatHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, 2025, msgs[0].Timestamp.Year())
}
