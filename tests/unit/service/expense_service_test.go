package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"detos/internal/domain"
	"detos/internal/service"
	"detos/mocks"
)

func TestExpenseService_Create_Success(t *testing.T) {
	repo := new(mocks.MockExpenseRepo)
	svc := service.NewExpenseService(repo)

	tenantID := uuid.New()
	userID := uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Expense) bool {
		return e.Category == domain.ExpenseCategoryConsumables &&
			e.Amount.String() == "1250.5" &&
			e.CreatedBy == userID
	})).Return(nil)

	expense, err := svc.Create(context.Background(), tenantID, userID, service.CreateExpenseInput{
		Category:    domain.ExpenseCategoryConsumables,
		Description: "microfiber towels",
		Amount:      "1250.50",
		SpentOn:     time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, "microfiber towels", expense.Description)
	repo.AssertExpectations(t)
}

func TestExpenseService_Create_UnknownCategory(t *testing.T) {
	repo := new(mocks.MockExpenseRepo)
	svc := service.NewExpenseService(repo)

	expense, err := svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateExpenseInput{
		Category:    domain.ExpenseCategory("entertainment"),
		Description: "team lunch",
		Amount:      "500.00",
		SpentOn:     time.Now(),
	})

	assert.Nil(t, expense)
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "category")
	repo.AssertNotCalled(t, "Create")
}

func TestExpenseService_Create_MalformedAmount(t *testing.T) {
	repo := new(mocks.MockExpenseRepo)
	svc := service.NewExpenseService(repo)

	for _, amount := range []string{"abc", "-10", "10.123", ""} {
		_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateExpenseInput{
			Category:    domain.ExpenseCategoryRent,
			Description: "workshop rent",
			Amount:      amount,
			SpentOn:     time.Now(),
		})

		var vErr *domain.ValidationError
		require.Truef(t, errors.As(err, &vErr), "amount %q should be rejected", amount)
		assert.Contains(t, vErr.Fields, "amount")
	}
}

func TestExpenseService_Update_AmountCorrection(t *testing.T) {
	repo := new(mocks.MockExpenseRepo)
	svc := service.NewExpenseService(repo)

	tenantID := uuid.New()
	expenseID := uuid.New()

	repo.On("GetByID", mock.Anything, tenantID, expenseID).Return(&domain.Expense{
		ID:       expenseID,
		TenantID: tenantID,
		Category: domain.ExpenseCategoryEquipment,
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(e *domain.Expense) bool {
		return e.Amount.String() == "9999.99"
	})).Return(nil)

	amount := "9999.99"
	expense, err := svc.Update(context.Background(), tenantID, expenseID, service.UpdateExpenseInput{
		Amount: &amount,
	})

	require.NoError(t, err)
	assert.Equal(t, "9999.99", expense.Amount.String())
	repo.AssertExpectations(t)
}
