package preflight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"runeshot/internal/config"
	"runeshot/internal/ledger"
)

// DefaultDiscordAPI is the Discord REST base URL.
const DefaultDiscordAPI = "https://discord.com/api/v10"

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckScreenshotDir verifies that the screenshot directory exists and can
// be listed. Write access is not required.
func CheckScreenshotDir(path string) Result {
	return checkDirectory("Screenshot directory", path, unix.R_OK|unix.X_OK, "readable")
}

func checkDirectory(name, path string, mode uint32, okDetail string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckLedger opens the configured ledger backend and reads the record.
func CheckLedger(ctx context.Context, cfg *config.Config) Result {
	const name = "Ledger"

	l, err := ledger.Open(cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	defer l.Close()

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	count, err := l.Count(checkCtx)
	switch {
	case errors.Is(err, ledger.ErrNotInitialized):
		return Result{Name: name, Passed: true, Detail: "not initialized yet (created on first run)"}
	case err != nil:
		return Result{Name: name, Detail: err.Error()}
	default:
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d screenshots recorded", count)}
	}
}

// CheckDiscord verifies that the bot token is valid and the bot can see the
// guild. An empty baseURL uses DefaultDiscordAPI.
func CheckDiscord(ctx context.Context, baseURL, token, guildID string) Result {
	const name = "Discord"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultDiscordAPI
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/guilds/"+guildID, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("guild check failed (%v)", err)}
	}
	req.Header.Set("Authorization", "Bot "+strings.TrimSpace(token))

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeNetError(err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var guild struct {
			Name string `json:"name"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&guild)
		if guild.Name == "" {
			return Result{Name: name, Passed: true, Detail: "guild reachable"}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("guild %q reachable", guild.Name)}
	case http.StatusUnauthorized:
		return Result{Name: name, Detail: "auth failed (invalid bot token)"}
	case http.StatusForbidden, http.StatusNotFound:
		return Result{Name: name, Detail: "bot is not a member of the guild"}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("guild check failed (%d)", resp.StatusCode)}
	}
}

func summarizeNetError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "guild check timed out (Discord unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "guild check timed out (Discord unreachable)"
	}
	return err.Error()
}
