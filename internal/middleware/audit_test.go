package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observedAudit(t *testing.T) (func(http.Handler) http.Handler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	return Audit(zap.New(core)), logs
}

func TestAuditSilentOnPlainSuccess(t *testing.T) {
	mw, logs := observedAudit(t)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts", nil))

	require.Zero(t, logs.Len(), "non-sensitive success must not log")
}

func TestAuditSensitivePathLogsEntryAndCompletion(t *testing.T) {
	mw, logs := observedAudit(t)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/login", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "sensitive operation initiated", entries[0].Message)
	require.Equal(t, "sensitive operation completed", entries[1].Message)
	require.Equal(t, "anonymous", entries[0].ContextMap()["user_id"])
}

func TestAuditWarnsOnErrorStatus(t *testing.T) {
	mw, logs := observedAudit(t)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, zap.WarnLevel, entries[0].Level)
	require.Equal(t, "request failed", entries[0].Message)
	require.EqualValues(t, http.StatusForbidden, entries[0].ContextMap()["status"])
}

func TestAuditSensitiveErrorLogsWarnNotCompletion(t *testing.T) {
	mw, logs := observedAudit(t)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/login", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "sensitive operation initiated", entries[0].Message)
	require.Equal(t, "request failed", entries[1].Message)
	require.Equal(t, zap.WarnLevel, entries[1].Level)
}

func TestAuditCompletionSeesSubjectSetDownstream(t *testing.T) {
	mw, logs := observedAudit(t)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Simulates the authentication gate resolving the subject.
		setAuditSubject(r.Context(), "42")
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "42", entries[0].ContextMap()["user_id"])
}

func TestAuditImplicitStatusIsOK(t *testing.T) {
	mw, logs := observedAudit(t)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok")) // no explicit WriteHeader
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/register", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	require.EqualValues(t, http.StatusOK, entries[1].ContextMap()["status"])
}
