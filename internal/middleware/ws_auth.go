package middleware

import (
	"net/url"

	"github.com/Vijayy-ai/localmart-v1/internal/models"
	"github.com/Vijayy-ai/localmart-v1/pkg/auth"
	"go.uber.org/zap"
)

// Identity is the outcome of websocket authentication: either a resolved
// user or anonymous. Anonymous is not an error here; it is rejected later
// by the room membership check, which is the actual authorization gate.
type Identity struct {
	user     models.User
	resolved bool
}

func Anonymous() Identity {
	return Identity{}
}

func ResolvedIdentity(user models.User) Identity {
	return Identity{user: user, resolved: true}
}

// User returns the resolved user and whether there is one.
func (id Identity) User() (models.User, bool) {
	return id.user, id.resolved
}

// UserResolver looks up a user record by its id.
type UserResolver interface {
	GetUser(id string) (*models.User, error)
}

// SocketAuthenticator resolves the identity presented at connection-upgrade
// time from the `token` query parameter. Unlike the REST middleware it never
// fails hard: any missing, malformed, expired or unresolvable token degrades
// to Anonymous and is only logged.
type SocketAuthenticator struct {
	jwtManager *auth.JWTManager
	users      UserResolver
	logger     *zap.SugaredLogger
}

func NewSocketAuthenticator(jwtManager *auth.JWTManager, users UserResolver, logger *zap.SugaredLogger) *SocketAuthenticator {
	return &SocketAuthenticator{
		jwtManager: jwtManager,
		users:      users,
		logger:     logger,
	}
}

func (a *SocketAuthenticator) Resolve(query url.Values) Identity {
	token := query.Get("token")
	if token == "" {
		return Anonymous()
	}

	claims, err := a.jwtManager.Verify(token)
	if err != nil {
		a.logger.Warnf("websocket auth: %v", err)
		return Anonymous()
	}

	user, err := a.users.GetUser(claims.Subject)
	if err != nil {
		a.logger.Warnf("websocket auth: cannot resolve subject %q: %v", claims.Subject, err)
		return Anonymous()
	}

	return ResolvedIdentity(*user)
}
