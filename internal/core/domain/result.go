package domain

type AccountRegistrationResult int

const (
	RegistrationSuccess AccountRegistrationResult = iota
	RegistrationNameConflict
)

type authenticationStatus int

// The zero value is a failed result, so a zero AuthenticationResult can never
// leak a success.
const (
	authenticationNameNotFound authenticationStatus = iota
	authenticationPasswordMismatch
	authenticationSuccess
)

// AuthenticationResult distinguishes name-not-found from password-mismatch
// internally; callers that surface the outcome must collapse both failures to
// the same response so usernames cannot be enumerated.
type AuthenticationResult struct {
	status authenticationStatus
	userID string
}

func AuthenticationSuccess(userID string) AuthenticationResult {
	return AuthenticationResult{status: authenticationSuccess, userID: userID}
}

func AuthenticationNameNotFound() AuthenticationResult {
	return AuthenticationResult{status: authenticationNameNotFound}
}

func AuthenticationPasswordMismatch() AuthenticationResult {
	return AuthenticationResult{status: authenticationPasswordMismatch}
}

func (r AuthenticationResult) Failed() bool {
	return r.status != authenticationSuccess
}

// UserID is only callable on a successful result.
func (r AuthenticationResult) UserID() string {
	if r.Failed() {
		panic("AuthenticationResult: UserID called on failed result")
	}
	return r.userID
}
