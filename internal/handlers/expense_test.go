package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/tripshare/tripshare/internal/models"
	"github.com/tripshare/tripshare/internal/services"
)

func TestExpenseHandler_Create(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	activityID := uuid.New()
	var got models.ExpenseParams
	handler := NewExpenseHandler(&mockExpenseService{CreateFunc: func(ctx context.Context, tripID, userID uuid.UUID, params models.ExpenseParams) (*models.Expense, error) {
		got = params
		return &models.Expense{ID: uuid.New(), TripID: tripID, Title: params.Title, Amount: params.Amount}, nil
	}})

	body := `{"title":"Tickets","amount":42.5,"date":"2026-07-02","activity_id":"` + activityID.String() + `"}`
	rr := httptest.NewRecorder()
	handler.Create(rr, newAuthedRequest(http.MethodPost, "/", body, user, "id", uuid.NewString()))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if got.Amount != 42.5 || got.ActivityID == nil || *got.ActivityID != activityID {
		t.Errorf("unexpected params %+v", got)
	}
	if got.UserPaidBy != nil {
		t.Error("payer should be left for the service to default")
	}
}

func TestExpenseHandler_Errors(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	handler := NewExpenseHandler(&mockExpenseService{
		GetFunc: func(ctx context.Context, expenseID, userID uuid.UUID) (*models.Expense, error) {
			return nil, services.ErrExpenseNotFound
		},
		UpdateFunc: func(ctx context.Context, expenseID, userID uuid.UUID, params models.ExpenseParams) (*models.Expense, error) {
			return nil, services.ErrActivityNotFound
		},
	})

	rr := httptest.NewRecorder()
	handler.Get(rr, newAuthedRequest(http.MethodGet, "/", "", user, "id", uuid.NewString()))
	assertErrorResponse(t, rr, http.StatusNotFound, "expense not found")

	rr = httptest.NewRecorder()
	handler.Update(rr, newAuthedRequest(http.MethodPut, "/", `{"title":"x","amount":1,"date":"2026-07-02"}`, user, "id", uuid.NewString()))
	assertErrorResponse(t, rr, http.StatusNotFound, "activity not found")

	rr = httptest.NewRecorder()
	handler.Create(rr, newAuthedRequest(http.MethodPost, "/", `{"amount":"lots"}`, user, "id", uuid.NewString()))
	assertErrorResponse(t, rr, http.StatusBadRequest, "Invalid request body")

	rr = httptest.NewRecorder()
	handler.List(rr, newAuthedRequest(http.MethodGet, "/", "", user, "id", uuid.NewString()))
	if rr.Body.String() != "{\"expenses\":[]}\n" {
		t.Errorf("expected empty list, got %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	handler.Delete(rr, newAuthedRequest(http.MethodDelete, "/", "", user, "id", uuid.NewString()))
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}

func TestExpenseHandler_Mine(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	tripID := uuid.New()
	var gotUser uuid.UUID
	handler := NewExpenseHandler(&mockExpenseService{ListPaidByFunc: func(ctx context.Context, userID uuid.UUID) (*models.PaidExpenses, error) {
		gotUser = userID
		return &models.PaidExpenses{
			Trips: []models.TripExpenses{{
				TripID:   tripID,
				TripName: "Lisbon",
				Expenses: []models.Expense{{ID: uuid.New(), TripID: tripID, Title: "Tram", Amount: 3}},
				Total:    3,
			}},
			GrandTotal: 3,
		}, nil
	}})

	rr := httptest.NewRecorder()
	handler.Mine(rr, newAuthedRequest(http.MethodGet, "/api/expenses", "", user))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotUser != user.ID {
		t.Errorf("expected lookup for %s, got %s", user.ID, gotUser)
	}
	var resp models.PaidExpenses
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Trips) != 1 || resp.Trips[0].TripName != "Lisbon" || resp.GrandTotal != 3 {
		t.Errorf("unexpected response %+v", resp)
	}

	rr = httptest.NewRecorder()
	handler.Mine(rr, newAuthedRequest(http.MethodGet, "/api/expenses", "", nil))
	assertErrorResponse(t, rr, http.StatusUnauthorized, "Authentication required")
}

func TestExpenseHandler_Create_OutsiderPayer(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	handler := NewExpenseHandler(&mockExpenseService{CreateFunc: func(ctx context.Context, tripID, userID uuid.UUID, params models.ExpenseParams) (*models.Expense, error) {
		return nil, fmt.Errorf("%w: payer must be a member of the trip", services.ErrValidation)
	}})

	body := `{"title":"Tickets","amount":5,"date":"2026-07-02","user_paid_by":"` + uuid.NewString() + `"}`
	rr := httptest.NewRecorder()
	handler.Create(rr, newAuthedRequest(http.MethodPost, "/", body, user, "id", uuid.NewString()))
	assertErrorResponse(t, rr, http.StatusBadRequest, "payer must be a member of the trip")
}
