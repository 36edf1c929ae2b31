// Package token issues and verifies the signed, expiring credentials used by
// the movie server, and declares the durable refresh-token store contract.
package token

import (
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/filmvault/movie-server/internal/apperr"
)

// Kind tags a token as usable for requests or for refresh only. The kind
// lives inside the signed payload so a single decode path serves both;
// callers must check it before trusting a token for a given purpose.
type Kind string

const (
	KindAccess  Kind = "ACCESS"
	KindRefresh Kind = "REFRESH"
)

const claimTokenType = "token_type"

// Claims are the decoded logical fields of a token. UserID and Role are only
// populated on access tokens.
type Claims struct {
	Subject   string
	Kind      Kind
	UserID    int64
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec encodes and decodes signed tokens with a process-wide symmetric key.
type Codec struct {
	signer  Signer
	skew    time.Duration
	nowFunc func() time.Time
}

type CodecOption func(*Codec)

// WithClockSkew sets the leeway allowed when checking expiry.
func WithClockSkew(skew time.Duration) CodecOption {
	return func(c *Codec) {
		c.skew = skew
	}
}

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

func NewCodec(signer Signer, options ...CodecOption) *Codec {
	c := &Codec{
		signer:  signer,
		skew:    30 * time.Second,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Issue builds a signed token for subject with the given kind and TTL.
// Every token carries a fresh jti, which is what makes two refresh tokens
// minted in the same second distinct strings.
func (c *Codec) Issue(subject string, kind Kind, extra map[string]any, ttl time.Duration) (string, error) {
	now := c.nowFunc()
	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = subject
	claims[claimTokenType] = string(kind)
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()
	claims["jti"] = uuid.New().String()

	log.Debug().Str("subject", subject).Str("kind", string(kind)).Msg("issuing token")
	return c.signer.Sign(claims)
}

// Decode verifies the signature and structure of raw and returns its claims.
// Fails with apperr.ErrInvalidToken on a bad signature or structure, and with
// apperr.ErrTokenExpired past expiry (beyond the skew tolerance). On
// ErrTokenExpired the claims are still returned: the token was well signed,
// and logout needs its subject.
func (c *Codec) Decode(raw string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithLeeway(c.skew),
		jwt.WithTimeFunc(c.nowFunc),
	)
	tok, err := parser.Parse(raw, c.signer.GetVerificationKey)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) && tok != nil {
			if mc, ok := tok.Claims.(jwt.MapClaims); ok {
				return claimsFromMap(mc), apperr.ErrTokenExpired
			}
		}
		return nil, apperr.ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.ErrInvalidToken
	}
	return claimsFromMap(mc), nil
}

// IsExpired reports whether the current time is at or after the token's
// expiry claim. A token that cannot be decoded at all is not "expired".
func (c *Codec) IsExpired(raw string) bool {
	claims, err := c.Decode(raw)
	if err != nil {
		return stderrors.Is(err, apperr.ErrTokenExpired)
	}
	return !c.nowFunc().Before(claims.ExpiresAt)
}

func claimsFromMap(mc jwt.MapClaims) *Claims {
	claims := &Claims{}
	claims.Subject, _ = mc["sub"].(string)
	if kind, ok := mc[claimTokenType].(string); ok {
		claims.Kind = Kind(kind)
	}
	if userID, ok := mc["userId"].(float64); ok {
		claims.UserID = int64(userID)
	}
	claims.Role, _ = mc["role"].(string)
	if iat, ok := mc["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := mc["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return claims
}
