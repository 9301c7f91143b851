package provider

import (
	"net/http"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
)

func isAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// classify maps a transport error from the Gemini client onto the provider error taxonomy.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if isAuthStatus(apiErr.HTTPCode()) {
			return errors.Wrapf(ErrAuthentication, "%s: %v", op, err)
		}
		if st := apiErr.GRPCStatus(); st != nil {
			switch st.Code() {
			case codes.Unauthenticated, codes.PermissionDenied:
				return errors.Wrapf(ErrAuthentication, "%s: %v", op, err)
			}
		}
	}

	var googleErr *googleapi.Error
	if errors.As(err, &googleErr) && isAuthStatus(googleErr.Code) {
		return errors.Wrapf(ErrAuthentication, "%s: %v", op, err)
	}

	// An invalid key is reported as a bad request rather than an auth failure.
	if strings.Contains(err.Error(), "API key not valid") {
		return errors.Wrapf(ErrAuthentication, "%s: %v", op, err)
	}

	return errors.Wrapf(ErrProvider, "%s: %v", op, err)
}
