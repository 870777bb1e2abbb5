package internal_test

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/household-expenses/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	It("finds an AppError through wrapping", func() {
		err := fmt.Errorf("loading month: %w", internal.ErrUnauthorized)

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusUnauthorized))
		Expect(internal.IsUnauthorized(err)).To(BeTrue())
		Expect(errors.Is(err, internal.ErrUnauthorized)).To(BeTrue())
	})

	It("does not mutate sentinels when adding a cause", func() {
		cause := errors.New("dial tcp: refused")
		derived := internal.ErrUnauthorized.WithCause(cause)

		Expect(internal.ErrUnauthorized.Cause).To(BeNil())
		Expect(errors.Is(derived, cause)).To(BeTrue())
		Expect(derived.Error()).To(ContainSubstring("refused"))
	})

	It("uses the first field message as the error text", func() {
		err := internal.NewValidationFieldError("amount", "amount must be greater than 0", internal.ErrCodeInvalidAmount)

		Expect(err.Error()).To(Equal("amount must be greater than 0"))
		Expect(err.Type).To(Equal(internal.ErrorTypeValidation))
	})

	It("joins every field message in the detailed message", func() {
		err := internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{
				{Field: "description", Message: "description is required"},
				{Field: "amount", Message: "amount must be greater than 0"},
			}})

		Expect(err.GetDetailedMessage()).To(Equal("description is required; amount must be greater than 0"))
	})

	It("keeps the server status on rejections", func() {
		err := internal.NewServerRejectionError(http.StatusConflict, "")

		Expect(err.Type).To(Equal(internal.ErrorTypeExternal))
		Expect(err.Message).To(Equal("Conflict"))
		Expect(internal.IsType(err, internal.ErrorTypeNetwork)).To(BeFalse())
	})
})
