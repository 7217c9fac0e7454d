package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"boatchat-client/internal/api"
	"boatchat-client/internal/dto"
	"boatchat-client/internal/entity"
	"boatchat-client/internal/pkg/logger"
)

// IUserService covers platform identity and the locally stored buyer
// profile. Identity comes from the hosting platform's /.auth/me endpoint;
// the profile is a small JSON file that survives restarts.
type IUserService interface {
	GetUserInfo(ctx context.Context) ([]dto.UserInfo, error)
	ShowAuthMessage(ctx context.Context, authEnabled bool, hostname string) bool
	DisplayName(info dto.UserInfo) string
	LoadProfile() (entity.UserProfile, error)
	SaveProfile(profile entity.UserProfile) error
}

type userService struct {
	client      api.IClient
	log         logger.ILogger
	profilePath string

	mu      sync.Mutex
	profile *entity.UserProfile
}

func NewUserService(client api.IClient, log logger.ILogger, profilePath string) IUserService {
	return &userService{client: client, log: log, profilePath: profilePath}
}

func (us *userService) GetUserInfo(ctx context.Context) ([]dto.UserInfo, error) {
	return us.client.GetUserInfo(ctx)
}

// ShowAuthMessage reports whether the auth-not-configured warning applies:
// auth is enabled in settings, no identity came back, and the client is not
// talking to a local loopback deployment.
func (us *userService) ShowAuthMessage(ctx context.Context, authEnabled bool, hostname string) bool {
	if !authEnabled {
		return false
	}
	info, err := us.client.GetUserInfo(ctx)
	if err != nil {
		us.log.Error("user", "user info fetch failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	return len(info) == 0 && hostname != "127.0.0.1"
}

// DisplayName prefers the platform's name claim and falls back to decoding
// the id token's claims locally. The token is platform-issued and already
// trusted here, so its signature is not re-verified.
func (us *userService) DisplayName(info dto.UserInfo) string {
	if name := info.Claim("name"); name != "" {
		return name
	}
	if info.IdToken == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(info.IdToken, claims); err != nil {
		us.log.Warn("user", "id token decode failed", map[string]interface{}{"error": err.Error()})
		return ""
	}
	if name, ok := claims["name"].(string); ok {
		return name
	}
	return ""
}

// LoadProfile reads the stored profile once and caches it. The file holds a
// one-element array for compatibility with earlier exports; a missing file
// is an empty profile, not an error.
func (us *userService) LoadProfile() (entity.UserProfile, error) {
	us.mu.Lock()
	defer us.mu.Unlock()

	if us.profile != nil {
		return *us.profile, nil
	}

	data, err := os.ReadFile(us.profilePath)
	if err != nil {
		if os.IsNotExist(err) {
			us.profile = &entity.UserProfile{}
			return *us.profile, nil
		}
		return entity.UserProfile{}, fmt.Errorf("read profile %s: %w", us.profilePath, err)
	}

	var profiles []entity.UserProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return entity.UserProfile{}, fmt.Errorf("decode profile %s: %w", us.profilePath, err)
	}
	if len(profiles) == 0 {
		us.profile = &entity.UserProfile{}
	} else {
		us.profile = &profiles[0]
	}
	return *us.profile, nil
}

func (us *userService) SaveProfile(profile entity.UserProfile) error {
	us.mu.Lock()
	defer us.mu.Unlock()

	data, err := json.Marshal([]entity.UserProfile{profile})
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(us.profilePath, data, 0o644); err != nil {
		return fmt.Errorf("write profile %s: %w", us.profilePath, err)
	}
	us.profile = &profile
	return nil
}
