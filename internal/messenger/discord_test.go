package messenger

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(t *testing.T, status int, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(string(data))),
	}
}

func newTestDiscord(t *testing.T, rt roundTripFunc) *Discord {
	t.Helper()
	d, err := NewDiscord("Bot-less-token", "guild-1", time.Second, nil)
	if err != nil {
		t.Fatalf("NewDiscord: %v", err)
	}
	d.session.Client = &http.Client{Transport: rt}
	return d
}

func TestNewDiscordRequiresCredentials(t *testing.T) {
	if _, err := NewDiscord("", "guild", 0, nil); err == nil {
		t.Fatal("expected error for missing token")
	}
	if _, err := NewDiscord("token", " ", 0, nil); err == nil {
		t.Fatal("expected error for missing guild")
	}
}

func TestDiscordFindChannelMatchesTextChannelsOnly(t *testing.T) {
	d := newTestDiscord(t, func(r *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(r.URL.Path, "/guilds/guild-1/channels") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bot Bot-less-token" {
			t.Fatalf("unexpected authorization %q", got)
		}
		return jsonResponse(t, http.StatusOK, []map[string]any{
			{"id": "10", "name": "quests", "type": 2},
			{"id": "11", "name": "quests", "type": 0},
			{"id": "12", "name": "pets", "type": 0},
		}), nil
	})

	ch, ok, err := d.FindChannel(context.Background(), "quests")
	if err != nil {
		t.Fatalf("FindChannel: %v", err)
	}
	if !ok || ch.ID != "11" {
		t.Fatalf("expected text channel 11, got %+v (found=%v)", ch, ok)
	}

	_, ok, err = d.FindChannel(context.Background(), "barrows")
	if err != nil {
		t.Fatalf("FindChannel: %v", err)
	}
	if ok {
		t.Fatal("expected barrows to be missing")
	}
}

func TestDiscordCreateChannel(t *testing.T) {
	d := newTestDiscord(t, func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["name"] != "level-ups" {
			t.Fatalf("unexpected channel name %v", body["name"])
		}
		return jsonResponse(t, http.StatusOK, map[string]any{"id": "99", "name": "level-ups", "type": 0}), nil
	})

	ch, err := d.CreateChannel(context.Background(), "level-ups")
	if err != nil {
		t.Fatalf("CreateChannel: %v", err)
	}
	if ch.ID != "99" || ch.Name != "level-ups" {
		t.Fatalf("unexpected channel %+v", ch)
	}
}

func TestDiscordSendUploadsAttachmentWithCaption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Quest(Dragon Slayer I).png")
	if err := os.WriteFile(path, []byte("png-bytes"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var gotCaption, gotFile, gotName string
	d := newTestDiscord(t, func(r *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(r.URL.Path, "/channels/55/messages") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			t.Fatalf("content type: %v", err)
		}
		reader := multipart.NewReader(r.Body, params["boundary"])
		for {
			part, err := reader.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("next part: %v", err)
			}
			data, _ := io.ReadAll(part)
			switch {
			case part.FormName() == "payload_json":
				var payload map[string]any
				if err := json.Unmarshal(data, &payload); err != nil {
					t.Fatalf("payload: %v", err)
				}
				gotCaption, _ = payload["content"].(string)
			case part.FileName() != "":
				gotName = part.FileName()
				gotFile = string(data)
			}
		}
		return jsonResponse(t, http.StatusOK, map[string]any{"id": "m1", "channel_id": "55"}), nil
	})

	msg := Message{
		Attachment: Attachment{Name: filepath.Base(path), Path: path},
		Caption:    `Completed quest "Dragon Slayer I"`,
	}
	if err := d.Send(context.Background(), "55", msg); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotCaption != msg.Caption {
		t.Fatalf("caption = %q", gotCaption)
	}
	if gotName != "Quest(Dragon Slayer I).png" || gotFile != "png-bytes" {
		t.Fatalf("unexpected attachment %q (%q)", gotName, gotFile)
	}
}

func TestDiscordSendMissingFile(t *testing.T) {
	d := newTestDiscord(t, func(*http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})
	err := d.Send(context.Background(), "1", Message{Attachment: Attachment{Path: filepath.Join(t.TempDir(), "gone.png")}})
	if err == nil {
		t.Fatal("expected error for missing attachment")
	}
}
