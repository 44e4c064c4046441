package tickets

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"planetaria/internal/reservations"
	"planetaria/internal/sessions"
	"planetaria/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type stubService struct {
	bookErr   error
	ticket    *Ticket
	listErr   error
	responses []TicketResponse
	lastBook  *BookTicketRequest
}

func (s *stubService) Book(ctx context.Context, caller users.Identity, req BookTicketRequest) (*Ticket, error) {
	s.lastBook = &req
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	return s.ticket, nil
}

func (s *stubService) Update(ctx context.Context, caller users.Identity, id string, req UpdateTicketRequest) (*Ticket, error) {
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	return s.ticket, nil
}

func (s *stubService) Delete(ctx context.Context, caller users.Identity, id string) error {
	return s.bookErr
}

func (s *stubService) List(ctx context.Context, caller users.Identity) ([]TicketResponse, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.responses, nil
}

func (s *stubService) ListForTelegram(ctx context.Context, telegramUsername string) ([]TicketResponse, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.responses, nil
}

func newTestEngine(svc Service, identity *users.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	if identity != nil {
		engine.Use(func(c *gin.Context) {
			c.Set("user_id", identity.ID.String())
			c.Set("user_role", string(identity.Role))
			c.Next()
		})
	}

	controller := NewController(svc)
	engine.POST("/tickets", controller.Book)
	engine.GET("/tickets", controller.List)
	engine.PUT("/tickets/:id", controller.Update)
	engine.DELETE("/tickets/:id", controller.Delete)
	return engine
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

func doBook(t *testing.T, engine *gin.Engine) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return doBookSeat(t, engine, 1, 1)
}

func doBookSeat(t *testing.T, engine *gin.Engine, row, seat int) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	body, _ := json.Marshal(gin.H{
		"row":          row,
		"seat":         seat,
		"show_session": uuid.NewString(),
		"reservation":  uuid.NewString(),
	})
	req := httptest.NewRequest(http.MethodPost, "/tickets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	var env envelope
	if err := json.Unmarshal(recorder.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return recorder, env
}

func TestBookErrorMapping(t *testing.T) {
	identity := users.Identity{ID: uuid.New(), Role: users.RoleUser}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			"out of range",
			&OutOfRangeError{Field: "row", Value: 6, Min: 1, Max: 5},
			http.StatusBadRequest,
		},
		{
			"seat conflict",
			&SeatConflictError{SessionID: uuid.New(), Row: 3, Seat: 5},
			http.StatusConflict,
		},
		{"reservation missing", reservations.ErrReservationNotFound, http.StatusNotFound},
		{"session missing", sessions.ErrSessionNotFound, http.StatusNotFound},
		{"not owner", ErrPermissionDenied, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(&stubService{bookErr: tt.err}, &identity)
			recorder, env := doBook(t, engine)

			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}
			if env.Status != "error" {
				t.Errorf("envelope status = %q, want error", env.Status)
			}
		})
	}
}

func TestBookOutOfRangeDetails(t *testing.T) {
	identity := users.Identity{ID: uuid.New(), Role: users.RoleUser}
	engine := newTestEngine(&stubService{
		bookErr: &OutOfRangeError{Field: "row", Value: 6, Min: 1, Max: 5},
	}, &identity)

	_, env := doBook(t, engine)

	var details struct {
		Field string `json:"field"`
		Min   int    `json:"min"`
		Max   int    `json:"max"`
	}
	if err := json.Unmarshal(env.Errors, &details); err != nil {
		t.Fatalf("decode error details: %v", err)
	}
	if details.Field != "row" || details.Min != 1 || details.Max != 5 {
		t.Errorf("details = %+v, want field row in [1, 5]", details)
	}
}

// Zero is a representable coordinate, so it has to pass binding and
// come back as a range error naming the field and its bounds.
func TestBookZeroCoordinateGetsRangeError(t *testing.T) {
	identity := users.Identity{ID: uuid.New(), Role: users.RoleUser}

	tests := []struct {
		name      string
		row, seat int
		field     string
		max       int
	}{
		{"row zero", 0, 1, "row", 5},
		{"seat zero", 1, 0, "seat", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubService{
				bookErr: &OutOfRangeError{Field: tt.field, Value: 0, Min: 1, Max: tt.max},
			}
			engine := newTestEngine(stub, &identity)

			recorder, env := doBookSeat(t, engine, tt.row, tt.seat)

			if stub.lastBook == nil {
				t.Fatal("request never reached the service")
			}
			if stub.lastBook.Row == nil || *stub.lastBook.Row != tt.row {
				t.Errorf("bound row = %v, want %d", stub.lastBook.Row, tt.row)
			}
			if stub.lastBook.Seat == nil || *stub.lastBook.Seat != tt.seat {
				t.Errorf("bound seat = %v, want %d", stub.lastBook.Seat, tt.seat)
			}
			if recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", recorder.Code)
			}

			var details struct {
				Field string `json:"field"`
				Min   int    `json:"min"`
				Max   int    `json:"max"`
			}
			if err := json.Unmarshal(env.Errors, &details); err != nil {
				t.Fatalf("decode error details: %v", err)
			}
			if details.Field != tt.field || details.Min != 1 || details.Max != tt.max {
				t.Errorf("details = %+v, want field %s in [1, %d]", details, tt.field, tt.max)
			}
		})
	}
}

func TestBookRequiresIdentity(t *testing.T) {
	engine := newTestEngine(&stubService{}, nil)
	recorder, _ := doBook(t, engine)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", recorder.Code)
	}
}

func TestBookSuccessEnvelope(t *testing.T) {
	identity := users.Identity{ID: uuid.New(), Role: users.RoleUser}
	engine := newTestEngine(&stubService{
		ticket: &Ticket{ID: uuid.New(), Row: 3, Seat: 5},
	}, &identity)

	recorder, env := doBook(t, engine)
	if recorder.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", recorder.Code)
	}
	if env.Status != "success" {
		t.Errorf("envelope status = %q, want success", env.Status)
	}
}

func TestListWithTelegramUsername(t *testing.T) {
	engine := newTestEngine(&stubService{
		responses: []TicketResponse{{ID: uuid.New(), Row: 1, Seat: 1}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/tickets?telegram_username=stargazer", nil)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", recorder.Code)
	}
}

func TestListUnknownTelegramUsername(t *testing.T) {
	engine := newTestEngine(&stubService{listErr: users.ErrUserNotFound}, nil)

	req := httptest.NewRequest(http.MethodGet, "/tickets?telegram_username=nobody", nil)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", recorder.Code)
	}
}

func TestListWithoutAnyIdentity(t *testing.T) {
	engine := newTestEngine(&stubService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", recorder.Code)
	}
}
