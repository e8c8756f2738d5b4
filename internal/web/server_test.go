package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"

	"github.com/aryanwebd35/portfolio/internal/assistant"
	"github.com/aryanwebd35/portfolio/internal/config"
	"github.com/aryanwebd35/portfolio/internal/content"
	"github.com/aryanwebd35/portfolio/internal/starfield"
	"github.com/aryanwebd35/portfolio/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeMailer) Send(name, email, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, name+"|"+email+"|"+message)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:             "0",
		ReplyDelay:       10 * time.Millisecond,
		StarCount:        50,
		FrameRate:        60,
		VisitorRetention: 24 * time.Hour,
	}
}

func newTestServer(t *testing.T) (*Server, *store.Store, *fakeMailer) {
	t.Helper()
	return newTestServerWith(t, testConfig())
}

func newTestServerWith(t *testing.T, cfg *config.Config) (*Server, *store.Store, *fakeMailer) {
	t.Helper()
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	p := content.Default()
	p.Photo = "does-not-exist.jpeg"
	mailer := &fakeMailer{}
	srv, err := New(cfg, p, st, mailer)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv, st, mailer
}

func do(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func sessionFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no chat session cookie set")
	return nil
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestIndexRendersProfileAndStartsSession(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Aryan Srivastava", "/go/leetcode", "chat-launcher", "/static/starfield.js"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
	first := sessionFrom(t, rec)

	rec = do(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	if second := sessionFrom(t, rec); second.Value == first.Value {
		t.Error("reload should start a new transcript")
	}
}

func TestHealthz(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := do(srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ok") {
		t.Fatalf("healthz = %d %s", rec.Code, rec.Body.String())
	}
}

func chatJSON(t *testing.T, srv *Server, req *http.Request, cookie *http.Cookie) chatResponse {
	t.Helper()
	req.Header.Set("Accept", "application/json")
	req.AddCookie(cookie)
	rec := do(srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("%s %s = %d", req.Method, req.URL.Path, rec.Code)
	}
	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding chat response: %v", err)
	}
	return resp
}

func TestChatSubmitJSON(t *testing.T) {
	srv, st, _ := newTestServer(t)
	cookie := sessionFrom(t, do(srv, httptest.NewRequest(http.MethodGet, "/", nil)))

	resp := chatJSON(t, srv, postForm("/chat", url.Values{"message": {"Show me your projects"}}), cookie)
	if !resp.Accepted {
		t.Fatal("submission not accepted")
	}
	if len(resp.Messages) != 2 || resp.Messages[1].Role != assistant.RoleUser {
		t.Fatalf("messages after submit = %+v", resp.Messages)
	}
	if !resp.Typing {
		t.Error("expected typing indicator while the reply is pending")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp = chatJSON(t, srv, httptest.NewRequest(http.MethodGet, "/chat/messages", nil), cookie)
		if len(resp.Messages) == 3 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if len(resp.Messages) != 3 {
		t.Fatalf("reply never arrived: %+v", resp.Messages)
	}
	if reply := resp.Messages[2]; reply.Role != assistant.RoleAssistant || !strings.Contains(reply.Text, "MNNIT Insights") {
		t.Errorf("reply = %+v", reply)
	}
	if resp.Typing {
		t.Error("typing indicator still on after reply")
	}

	for time.Now().Before(deadline) {
		stats, err := st.Stats(time.Now())
		if err != nil {
			t.Fatal(err)
		}
		if stats.TotalQuestions == 1 {
			if stats.TopTopics[0].Rule != assistant.RuleProjects {
				t.Errorf("topic = %q", stats.TopTopics[0].Rule)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("chat topic never recorded")
}

func TestChatSubmitBlankIsNoContent(t *testing.T) {
	srv, _, _ := newTestServer(t)
	cookie := sessionFrom(t, do(srv, httptest.NewRequest(http.MethodGet, "/", nil)))

	req := postForm("/chat", url.Values{"message": {"   "}})
	req.AddCookie(cookie)
	if rec := do(srv, req); rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}

	resp := chatJSON(t, srv, httptest.NewRequest(http.MethodGet, "/chat/messages", nil), cookie)
	if len(resp.Messages) != 1 || resp.Typing {
		t.Errorf("blank input changed the transcript: %+v", resp)
	}
}

func TestChatFragmentLinkifiesURLs(t *testing.T) {
	srv, _, _ := newTestServer(t)
	cookie := sessionFrom(t, do(srv, httptest.NewRequest(http.MethodGet, "/", nil)))

	req := postForm("/chat", url.Values{"message": {"resume please"}})
	req.AddCookie(cookie)
	if rec := do(srv, req); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	resume := content.Default().ResumeURL
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		req := httptest.NewRequest(http.MethodGet, "/chat/messages", nil)
		req.AddCookie(cookie)
		body := do(srv, req).Body.String()
		if strings.Contains(body, `<a href="`+resume+`"`) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("resume URL never rendered as a link")
}

func TestChatToggle(t *testing.T) {
	srv, _, _ := newTestServer(t)
	cookie := sessionFrom(t, do(srv, httptest.NewRequest(http.MethodGet, "/", nil)))

	req := httptest.NewRequest(http.MethodPost, "/chat/toggle", nil)
	req.AddCookie(cookie)
	rec := do(srv, req)
	if !strings.Contains(rec.Body.String(), "chat open") {
		t.Fatalf("toggle did not open the widget: %s", rec.Body.String())
	}

	resp := chatJSON(t, srv, httptest.NewRequest(http.MethodPost, "/chat/toggle", nil), cookie)
	if resp.Open {
		t.Error("second toggle should close the widget")
	}
}

func TestGoRedirectCountsClick(t *testing.T) {
	srv, st, _ := newTestServer(t)

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/go/leetcode", nil))
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "https://leetcode.com/u/aryancpp/" {
		t.Errorf("Location = %q", loc)
	}

	links, err := st.Links()
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 1 || links[0].Name != "leetcode" || links[0].Clicks != 1 {
		t.Errorf("links = %+v", links)
	}

	if rec := do(srv, httptest.NewRequest(http.MethodGet, "/go/nowhere", nil)); rec.Code != http.StatusNotFound {
		t.Errorf("unknown link status = %d", rec.Code)
	}
}

func TestPhotoFallsBack(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := do(srv, httptest.NewRequest(http.MethodGet, "/photo", nil))
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != content.Default().PhotoFallbackURL {
		t.Errorf("Location = %q", loc)
	}
}

func TestContactForm(t *testing.T) {
	srv, _, mailer := newTestServer(t)

	rec := do(srv, postForm("/contact", url.Values{
		"fullName": {"Ada"},
		"email":    {"ada@example.com"},
		"message":  {"Hello there"},
	}))
	if !strings.Contains(rec.Body.String(), "Thank you") {
		t.Fatalf("body = %s", rec.Body.String())
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "Ada|ada@example.com|Hello there" {
		t.Errorf("sent = %v", mailer.sent)
	}

	rec = do(srv, postForm("/contact", url.Values{
		"fullName": {"Ada"},
		"email":    {"not-an-address"},
		"message":  {"Hello"},
	}))
	if !strings.Contains(rec.Body.String(), "valid email") {
		t.Errorf("invalid email body = %s", rec.Body.String())
	}

	mailer.err = ErrMailNotConfigured
	rec = do(srv, postForm("/contact", url.Values{
		"fullName": {"Ada"},
		"email":    {"ada@example.com"},
		"message":  {"Hello"},
	}))
	if !strings.Contains(rec.Body.String(), "try again later") {
		t.Errorf("mailer failure body = %s", rec.Body.String())
	}
}

func TestVisitorTracking(t *testing.T) {
	srv, st, _ := newTestServer(t)

	do(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	do(srv, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	dnt := httptest.NewRequest(http.MethodGet, "/", nil)
	dnt.Header.Set("DNT", "1")
	do(srv, dnt)
	srv.Wait()

	visitors, err := st.RecentVisitors(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(visitors) != 1 || visitors[0].Path != "/" {
		t.Fatalf("visitors = %+v", visitors)
	}
	if strings.Contains(visitors[0].HashedIP, "192.0.2.1") {
		t.Error("raw IP stored")
	}
}

func TestAdminLogin(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/admin/login" {
		t.Fatalf("unauthenticated dashboard = %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = do(srv, postForm("/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}}))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d", rec.Code)
	}

	rec = do(srv, postForm("/admin/login", url.Values{"username": {"admin"}, "password": {"admin123"}}))
	if rec.Code != http.StatusFound {
		t.Fatalf("login status = %d", rec.Code)
	}
	var token *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == adminCookie {
			token = c
		}
	}
	if token == nil {
		t.Fatal("no admin cookie")
	}

	for _, path := range []string{"/admin/dashboard", "/admin/visitors", "/admin/links", "/admin/api/stats"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(token)
		if rec := do(srv, req); rec.Code != http.StatusOK {
			t.Errorf("%s = %d", path, rec.Code)
		}
	}
}

func TestStarfieldStream(t *testing.T) {
	srv, _, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/starfield?w=120&h=80"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var frame starfield.Frame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("reading frame: %v", err)
	}
	if frame.Width != 120 || frame.Height != 80 {
		t.Errorf("frame size = %dx%d", frame.Width, frame.Height)
	}
	if frame.Vignette == nil || len(frame.Circles) > 50 {
		t.Errorf("frame = %+v", frame)
	}

	if err := conn.WriteJSON(starfield.Size{Width: 60, Height: 40}); err != nil {
		t.Fatalf("sending resize: %v", err)
	}
	for range 100 {
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("reading frame: %v", err)
		}
		if frame.Width == 60 && frame.Height == 40 {
			return
		}
	}
	t.Error("resize never reached the stream")
}

func TestAdminAcceptsBcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	a, err := newAdmin("owner", string(hash), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !a.checkCredentials("owner", "s3cret") {
		t.Error("hashed password rejected")
	}
	if a.checkCredentials("owner", string(hash)) || a.checkCredentials("admin", "s3cret") {
		t.Error("wrong credentials accepted")
	}
}

func TestChatSessionCookieOutlivesIdleWindow(t *testing.T) {
	srv, _, _ := newTestServer(t)
	now := time.Now()
	srv.sessions.now = func() time.Time { return now }

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := sessionFrom(t, rec)
	if cookie.MaxAge != 0 || !cookie.Expires.IsZero() {
		t.Errorf("session cookie should last for the browser session, got MaxAge=%d Expires=%v", cookie.MaxAge, cookie.Expires)
	}

	// Keep chatting past the idle window measured from page load.
	now = now.Add(20 * time.Minute)
	resp := chatJSON(t, srv, postForm("/chat", url.Values{"message": {"skills"}}), cookie)
	if !resp.Accepted || len(resp.Messages) != 2 {
		t.Fatalf("first message: %+v", resp)
	}

	now = now.Add(20 * time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/chat/messages", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(cookie)
	rec = do(srv, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			t.Errorf("active session was replaced by %q", c.Value)
		}
	}
	var later chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &later); err != nil {
		t.Fatal(err)
	}
	if len(later.Messages) < 2 || later.Messages[1].Text != "skills" {
		t.Errorf("transcript reset during an active conversation: %+v", later.Messages)
	}
}

// waitForReply polls until no reply is pending and returns the transcript.
func waitForReply(t *testing.T, srv *Server, cookie *http.Cookie) chatResponse {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp := chatJSON(t, srv, httptest.NewRequest(http.MethodGet, "/chat/messages", nil), cookie)
		if !resp.Typing {
			return resp
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("reply never arrived")
	return chatResponse{}
}

func TestWaitCoversReplyTopics(t *testing.T) {
	srv, st, _ := newTestServer(t)
	cookie := sessionFrom(t, do(srv, httptest.NewRequest(http.MethodGet, "/", nil)))

	chatJSON(t, srv, postForm("/chat", url.Values{"message": {"github"}}), cookie)
	waitForReply(t, srv, cookie)
	srv.Wait()

	stats, err := st.Stats(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalQuestions != 1 {
		t.Errorf("questions recorded = %d, want 1", stats.TotalQuestions)
	}
}

func TestCloseStopsRecordingLateReplies(t *testing.T) {
	cfg := testConfig()
	cfg.ReplyDelay = 100 * time.Millisecond
	srv, st, _ := newTestServerWith(t, cfg)
	cookie := sessionFrom(t, do(srv, httptest.NewRequest(http.MethodGet, "/", nil)))

	chatJSON(t, srv, postForm("/chat", url.Values{"message": {"github"}}), cookie)
	srv.Close()

	resp := waitForReply(t, srv, cookie)
	if len(resp.Messages) != 3 {
		t.Fatalf("pending reply not delivered after Close: %+v", resp.Messages)
	}
	srv.Wait()

	stats, err := st.Stats(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalQuestions != 0 {
		t.Errorf("reply after Close was recorded")
	}
}

func dialStarfield(ts *httptest.Server) (*websocket.Conn, *http.Response, error) {
	return websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/starfield?w=40&h=30", nil)
}

func TestStarfieldStreamLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxStreams = 1
	srv, _, _ := newTestServerWith(t, cfg)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	first, _, err := dialStarfield(ts)
	if err != nil {
		t.Fatalf("first dial: %v", err)
	}
	defer first.Close()

	_, resp, err := dialStarfield(ts)
	if !errors.Is(err, websocket.ErrBadHandshake) {
		t.Fatalf("second dial err = %v, want bad handshake", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestStarfieldStreamPausesWhenHidden(t *testing.T) {
	srv, _, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn, _, err := dialStarfield(ts)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var frame starfield.Frame
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("reading frame: %v", err)
	}
	if err := conn.WriteJSON(map[string]bool{"hidden": true}); err != nil {
		t.Fatal(err)
	}

	// Frames already in flight drain, then the stream goes quiet.
	for range 120 {
		conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
		err := conn.ReadJSON(&frame)
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return
		}
		if err != nil {
			t.Fatalf("reading frame: %v", err)
		}
	}
	t.Error("frames kept arriving while hidden")
}

func TestStarfieldScriptMatchesViewportClamp(t *testing.T) {
	js, err := fs.ReadFile(staticFiles(), "starfield.js")
	if err != nil {
		t.Fatal(err)
	}
	want := fmt.Sprintf("const MAX_VIEWPORT = %d;", maxViewport)
	if !strings.Contains(string(js), want) {
		t.Errorf("starfield.js does not clamp the canvas to %d", maxViewport)
	}
	if strings.Contains(string(js), "canvas.width !== frame.w") {
		t.Error("starfield.js still drops frames whose size differs from the canvas")
	}
}
