package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PlaybackTokenTTL is the fixed lifetime of a playback token.
const PlaybackTokenTTL = time.Hour

const (
	playbackTokenSeparator = ":"
	playbackTokenFields    = 4
	playbackSignatureLen   = 16
)

var (
	ErrMalformedPlaybackToken    = errors.New("malformed playback token")
	ErrPlaybackVideoMismatch     = errors.New("playback token issued for another video")
	ErrPlaybackTokenExpired      = errors.New("playback token expired")
	ErrPlaybackSignatureMismatch = errors.New("playback token signature mismatch")
	ErrInvalidPlaybackSubject    = errors.New("video and user ids must be non-empty and must not contain ':'")
)

// PlaybackClaims are the fields bound into a playback token.
type PlaybackClaims struct {
	VideoID   string
	UserID    string
	ExpiresAt time.Time
}

// PlaybackTokenService mints and verifies playback tokens of the form
// video_id:user_id:expiry:signature, where signature is the first 16 hex
// characters of sha256("video_id:user_id:expiry:secret"). Tokens are
// stateless capabilities: nothing is stored and nothing can be revoked.
type PlaybackTokenService struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

// NewPlaybackTokenService creates a playback token service signing with secret.
func NewPlaybackTokenService(secret string) *PlaybackTokenService {
	return &PlaybackTokenService{
		secret: secret,
		ttl:    PlaybackTokenTTL,
		now:    time.Now,
	}
}

// GenerateToken mints a token authorizing userID to play videoID for one hour.
// The same inputs within the same second yield the same token.
func (s *PlaybackTokenService) GenerateToken(videoID, userID string) (string, error) {
	if !validSubject(videoID) || !validSubject(userID) {
		return "", ErrInvalidPlaybackSubject
	}

	expiry := strconv.FormatInt(s.now().Add(s.ttl).Unix(), 10)
	payload := strings.Join([]string{videoID, userID, expiry}, playbackTokenSeparator)

	return payload + playbackTokenSeparator + s.sign(payload), nil
}

// ParseToken validates token against expectedVideoID and returns its claims.
// Checks run in order: structure, video binding, expiry, signature.
func (s *PlaybackTokenService) ParseToken(token, expectedVideoID string) (*PlaybackClaims, error) {
	parts := strings.Split(token, playbackTokenSeparator)
	if len(parts) != playbackTokenFields {
		return nil, ErrMalformedPlaybackToken
	}

	videoID, userID, expiryStr, signature := parts[0], parts[1], parts[2], parts[3]

	if videoID != expectedVideoID {
		return nil, ErrPlaybackVideoMismatch
	}

	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: expiry %q", ErrMalformedPlaybackToken, expiryStr)
	}

	// the expiry second itself is still valid
	expiresAt := time.Unix(expiry, 0)
	if s.now().After(expiresAt) {
		return nil, ErrPlaybackTokenExpired
	}

	payload := strings.Join(parts[:3], playbackTokenSeparator)
	expected := s.sign(payload)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) != 1 {
		return nil, ErrPlaybackSignatureMismatch
	}

	return &PlaybackClaims{
		VideoID:   videoID,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}

// VerifyToken reports whether token currently authorizes playback of expectedVideoID.
func (s *PlaybackTokenService) VerifyToken(token, expectedVideoID string) bool {
	_, err := s.ParseToken(token, expectedVideoID)
	return err == nil
}

// sign returns the truncated hex sha256 of payload + ":" + secret.
func (s *PlaybackTokenService) sign(payload string) string {
	sum := sha256.Sum256([]byte(payload + playbackTokenSeparator + s.secret))
	return hex.EncodeToString(sum[:])[:playbackSignatureLen]
}

func validSubject(id string) bool {
	return id != "" && !strings.Contains(id, playbackTokenSeparator)
}
