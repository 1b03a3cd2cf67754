package contactclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled() Fields {
	return Fields{Name: "Ana", Email: "ana@x.com", Subject: "Hi", Message: "Hello there"}
}

func TestReduce_Transitions(t *testing.T) {
	s := InitialState()
	assert.Equal(t, StatusIdle, s.Status)

	for field, value := range map[Field]string{
		FieldName: "Ana", FieldEmail: "ana@x.com", FieldSubject: "Hi", FieldMessage: "Hello there",
	} {
		s = Reduce(s, FieldChanged{Field: field, Value: value})
	}
	assert.Equal(t, filled(), s.Fields)

	s = Reduce(s, SubmitRequested{})
	assert.Equal(t, StatusSubmitting, s.Status)
	assert.False(t, s.CanSubmit())

	// double submit while in flight is ignored
	assert.Equal(t, s, Reduce(s, SubmitRequested{}))

	success := Reduce(s, SubmitSucceeded{})
	assert.Equal(t, StatusSuccess, success.Status)
	assert.Equal(t, Fields{}, success.Fields)
	assert.Equal(t, StatusIdle, Reduce(success, ResetElapsed{}).Status)

	failed := Reduce(s, SubmitFailed{Err: errors.New("boom")})
	assert.Equal(t, StatusError, failed.Status)
	assert.Equal(t, filled(), failed.Fields)
	assert.True(t, failed.CanSubmit())

	retry := Reduce(failed, SubmitRequested{})
	assert.Equal(t, StatusSubmitting, retry.Status)
	assert.NoError(t, retry.Err)
}

func TestReduce_MissingFieldsStayIdle(t *testing.T) {
	s := Reduce(InitialState(), FieldChanged{Field: FieldName, Value: "Ana"})
	s = Reduce(s, FieldChanged{Field: FieldSubject, Value: "   "})

	s = Reduce(s, SubmitRequested{})
	assert.Equal(t, StatusIdle, s.Status)
	assert.Equal(t, []Field{FieldEmail, FieldSubject, FieldMessage}, s.Invalid)

	s = Reduce(s, FieldChanged{Field: FieldEmail, Value: "ana@x.com"})
	assert.Nil(t, s.Invalid)
}

func TestReduce_IgnoresStrayEvents(t *testing.T) {
	idle := InitialState()
	assert.Equal(t, idle, Reduce(idle, SubmitSucceeded{}))
	assert.Equal(t, idle, Reduce(idle, SubmitFailed{Err: errors.New("late")}))
	assert.Equal(t, idle, Reduce(idle, ResetElapsed{}))

	errState := State{Status: StatusError, Fields: filled()}
	assert.Equal(t, errState, Reduce(errState, ResetElapsed{}))
}

type apiStub struct {
	mu       sync.Mutex
	requests []Fields
	status   int
	body     string
}

func (a *apiStub) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var f Fields
		require.NoError(t, json.NewDecoder(r.Body).Decode(&f))
		a.mu.Lock()
		a.requests = append(a.requests, f)
		status, body := a.status, a.body
		a.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (a *apiStub) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests)
}

func fillController(c *Controller, f Fields) {
	c.SetField(FieldName, f.Name)
	c.SetField(FieldEmail, f.Email)
	c.SetField(FieldSubject, f.Subject)
	c.SetField(FieldMessage, f.Message)
}

func TestClient_Submit(t *testing.T) {
	stub := &apiStub{status: http.StatusOK, body: `{"message":"Emails sent successfully"}`}
	srv := httptest.NewServer(stub.handler(t))
	defer srv.Close()

	msg, err := NewClient(srv.URL, srv.Client()).Submit(context.Background(), filled())
	require.NoError(t, err)
	assert.Equal(t, "Emails sent successfully", msg)
	stub.mu.Lock()
	defer stub.mu.Unlock()
	assert.Equal(t, []Fields{filled()}, stub.requests)
}

func TestClient_Errors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		stub := &apiStub{status: http.StatusInternalServerError, body: `{"error":"Failed to send emails"}`}
		srv := httptest.NewServer(stub.handler(t))
		defer srv.Close()

		_, err := NewClient(srv.URL, srv.Client()).Submit(context.Background(), filled())
		var respErr *ResponseError
		require.ErrorAs(t, err, &respErr)
		assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
		assert.Equal(t, "Failed to send emails", respErr.Message)
		assert.False(t, IsNetworkError(err))
	})

	t.Run("malformed success body", func(t *testing.T) {
		stub := &apiStub{status: http.StatusOK, body: `<html>`}
		srv := httptest.NewServer(stub.handler(t))
		defer srv.Close()

		_, err := NewClient(srv.URL, srv.Client()).Submit(context.Background(), filled())
		assert.True(t, IsNetworkError(err))
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewClient(url, nil).Submit(context.Background(), filled())
		assert.True(t, IsNetworkError(err))
	})
}

func TestController_SuccessClearsAndResets(t *testing.T) {
	stub := &apiStub{status: http.StatusOK, body: `{"message":"Emails sent successfully"}`}
	srv := httptest.NewServer(stub.handler(t))
	defer srv.Close()

	var (
		mu       sync.Mutex
		statuses []Status
	)
	c := NewController(NewClient(srv.URL, srv.Client()),
		WithResetDelay(20*time.Millisecond),
		WithOnChange(func(s State) {
			mu.Lock()
			defer mu.Unlock()
			if len(statuses) == 0 || statuses[len(statuses)-1] != s.Status {
				statuses = append(statuses, s.Status)
			}
		}),
	)
	defer c.Close()

	fillController(c, filled())
	require.NoError(t, c.Submit(context.Background()))

	s := c.State()
	assert.Equal(t, StatusSuccess, s.Status)
	assert.Equal(t, Fields{}, s.Fields)
	assert.Equal(t, 1, stub.count())

	assert.Eventually(t, func() bool { return c.State().Status == StatusIdle }, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Status{StatusIdle, StatusSubmitting, StatusSuccess, StatusIdle}, statuses)
}

func TestController_ErrorKeepsFields(t *testing.T) {
	stub := &apiStub{status: http.StatusInternalServerError, body: `{"error":"Failed to send emails"}`}
	srv := httptest.NewServer(stub.handler(t))
	defer srv.Close()

	c := NewController(NewClient(srv.URL, srv.Client()), WithResetDelay(10*time.Millisecond))
	defer c.Close()

	fillController(c, filled())
	err := c.Submit(context.Background())
	require.Error(t, err)

	s := c.State()
	assert.Equal(t, StatusError, s.Status)
	assert.Equal(t, filled(), s.Fields)
	assert.Equal(t, err, s.Err)

	// stays in error; only success schedules a reset
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, StatusError, c.State().Status)

	// user retries after the backend recovers
	stub.mu.Lock()
	stub.status, stub.body = http.StatusOK, `{"message":"Emails sent successfully"}`
	stub.mu.Unlock()
	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, StatusSuccess, c.State().Status)
	assert.Equal(t, 2, stub.count())
}

func TestController_MissingFieldsDoNotSend(t *testing.T) {
	stub := &apiStub{status: http.StatusOK, body: `{}`}
	srv := httptest.NewServer(stub.handler(t))
	defer srv.Close()

	c := NewController(NewClient(srv.URL, srv.Client()))
	defer c.Close()

	f := filled()
	f.Email = ""
	fillController(c, f)

	err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, StatusIdle, c.State().Status)
	assert.Equal(t, []Field{FieldEmail}, c.State().Invalid)
	assert.Equal(t, 0, stub.count())
}

type blockingSubmitter struct {
	release chan struct{}
	calls   int
	mu      sync.Mutex
}

func (b *blockingSubmitter) Submit(ctx context.Context, f Fields) (string, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	<-b.release
	return "ok", nil
}

func TestController_RejectsDuplicateWhileSubmitting(t *testing.T) {
	sub := &blockingSubmitter{release: make(chan struct{})}
	c := NewController(sub, WithResetDelay(time.Hour))
	defer c.Close()
	fillController(c, filled())

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()

	require.Eventually(t, func() bool { return c.State().Status == StatusSubmitting }, time.Second, time.Millisecond)
	assert.ErrorIs(t, c.Submit(context.Background()), ErrNotReady)

	close(sub.release)
	require.NoError(t, <-done)

	sub.mu.Lock()
	defer sub.mu.Unlock()
	assert.Equal(t, 1, sub.calls)
}
