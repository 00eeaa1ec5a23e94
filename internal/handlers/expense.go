package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tripshare/tripshare/internal/models"
	"github.com/tripshare/tripshare/internal/services"
)

type ExpenseHandler struct {
	expenseService services.ExpenseServiceInterface
}

func NewExpenseHandler(expenseService services.ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

type ExpenseRequest struct {
	Title      string     `json:"title"`
	Amount     float64    `json:"amount"`
	UserPaidBy *uuid.UUID `json:"user_paid_by"`
	Date       Date       `json:"date"`
	ActivityID *uuid.UUID `json:"activity_id"`
}

func (req ExpenseRequest) params() models.ExpenseParams {
	return models.ExpenseParams{
		Title:      req.Title,
		Amount:     req.Amount,
		UserPaidBy: req.UserPaidBy,
		Date:       req.Date.Time,
		ActivityID: req.ActivityID,
	}
}

type ExpenseListResponse struct {
	Expenses []models.Expense `json:"expenses"`
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	tripID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid trip ID")
		return
	}

	expenses, err := h.expenseService.List(r.Context(), tripID, user.ID)
	if err != nil {
		writeServiceError(w, err, "listing expenses")
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}

	writeJSON(w, http.StatusOK, ExpenseListResponse{Expenses: expenses})
}

// Mine lists the caller's own payments across all trips.
func (h *ExpenseHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	paid, err := h.expenseService.ListPaidBy(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, "listing paid expenses")
		return
	}

	writeJSON(w, http.StatusOK, paid)
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	expenseID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.Get(r.Context(), expenseID, user.ID)
	if err != nil {
		writeServiceError(w, err, "getting expense")
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	tripID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid trip ID")
		return
	}

	var req ExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, err := h.expenseService.Create(r.Context(), tripID, user.ID, req.params())
	if err != nil {
		writeServiceError(w, err, "creating expense")
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	expenseID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	var req ExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, err := h.expenseService.Update(r.Context(), expenseID, user.ID, req.params())
	if err != nil {
		writeServiceError(w, err, "updating expense")
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	expenseID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	if err := h.expenseService.Delete(r.Context(), expenseID, user.ID); err != nil {
		writeServiceError(w, err, "deleting expense")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Expense deleted"})
}
