package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/reels-cli/internal/engagement"
	"github.com/glabrego/reels-cli/internal/feed"
	"github.com/glabrego/reels-cli/internal/media"
	"github.com/glabrego/reels-cli/internal/playback"
	"github.com/glabrego/reels-cli/internal/reels"
	"github.com/glabrego/reels-cli/internal/storage"
	"github.com/glabrego/reels-cli/internal/tui/actions"
	"github.com/glabrego/reels-cli/internal/tui/platform"
	tuistate "github.com/glabrego/reels-cli/internal/tui/state"
	tuitheme "github.com/glabrego/reels-cli/internal/tui/theme"
	"github.com/glabrego/reels-cli/internal/tui/view"
	"github.com/glabrego/reels-cli/internal/viewport"
)

const (
	mountBehind = 1
	mountAhead  = 2

	defaultScrollFrames  = 6
	defaultFrameInterval = 16 * time.Millisecond
	defaultTickInterval  = 500 * time.Millisecond
	defaultStatusTTL     = 3 * time.Second
	defaultAlertTTL      = 5 * time.Second
)

// Deps wires the engine into the model.
type Deps struct {
	Loader   *feed.Loader
	Tracker  *viewport.Tracker
	Player   *playback.Controller
	Gateway  actions.Engager
	Policy   *media.Policy
	Views    actions.ViewRecorder
	ViewerID string
	Origin   string
	Logger   *slog.Logger
	// ViewCount is the number of views already in the history.
	ViewCount int

	// NewElement creates the media element for a reel when it enters the
	// mount window.
	NewElement func(reels.Reel) media.Element
}

type Model struct {
	loader     *feed.Loader
	store      *feed.Store
	tracker    *viewport.Tracker
	player     *playback.Controller
	gateway    actions.Engager
	policy     *media.Policy
	views      actions.ViewRecorder
	newElement func(reels.Reel) media.Element
	viewerID   string
	origin     string
	logger     *slog.Logger
	theme      tuitheme.Theme

	width  int
	height int

	scroll        tuistate.Scroll
	scrollTop     float64
	scrollSeq     int
	target        int
	scrollFrames  int
	frameInterval time.Duration
	tickInterval  time.Duration
	statusTTL     time.Duration
	alertTTL      time.Duration

	mounted   map[string]media.Element
	mediaErr  map[string]string
	retrying  map[string]bool
	lastView  string
	viewCount int

	loading     bool
	err         error
	status      string
	statusID    int
	alert       string
	alertID     int
	showHelp    bool
	nerdFooter  bool
	composing   bool
	commentText string
	startup     string

	openURLFn         func(string) error
	copyURLFn         func(string) error
	savePreferencesFn func(context.Context, storage.Preferences) error
	nowFn             func() time.Time
}

func NewModel(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	var store *feed.Store
	if deps.Loader != nil {
		store = deps.Loader.Store()
	}
	return Model{
		loader:        deps.Loader,
		store:         store,
		tracker:       deps.Tracker,
		player:        deps.Player,
		gateway:       deps.Gateway,
		policy:        deps.Policy,
		views:         deps.Views,
		newElement:    deps.NewElement,
		viewCount:     deps.ViewCount,
		viewerID:      deps.ViewerID,
		origin:        deps.Origin,
		logger:        logger,
		theme:         tuitheme.Default(),
		scrollFrames:  defaultScrollFrames,
		frameInterval: defaultFrameInterval,
		tickInterval:  defaultTickInterval,
		statusTTL:     defaultStatusTTL,
		alertTTL:      defaultAlertTTL,
		mounted:       make(map[string]media.Element),
		mediaErr:      make(map[string]string),
		retrying:      make(map[string]bool),
		openURLFn:     platform.OpenURLInBrowser,
		copyURLFn:     platform.CopyToClipboard,
		nowFn:         time.Now,
		startup:       "first page pending",
	}
}

func (m Model) Init() tea.Cmd {
	if m.loader == nil {
		return nil
	}
	cmds := []tea.Cmd{actions.PlaybackTickCmd(m.tickInterval)}
	if cmd := m.beginReload(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scrollSeq++
		m.scrollTop = m.itemOffset(m.target)
		m.scroll = tuistate.Scroll{From: m.scrollTop, To: m.scrollTop}
		return m, nil
	case tea.KeyMsg:
		if m.composing {
			return m.updateComposer(msg)
		}
		return m.updateKey(msg)
	case actions.PageLoadSuccessMsg:
		return m.onPageLoaded(msg)
	case actions.PageLoadErrorMsg:
		return m.onPageError(msg)
	case actions.ScrollFrameMsg:
		return m.onScrollFrame(msg)
	case actions.SettleMsg:
		return m.onSettle(msg)
	case actions.SwitchDoneMsg:
		if msg.Err != nil && !errors.Is(msg.Err, playback.ErrUnknownIndex) {
			m.logger.Warn("switch failed", "index", msg.Index, "err", msg.Err)
			if id, ok := m.store.IDAt(msg.Index); ok {
				m.mediaErr[id] = rootMessage(msg.Err)
			}
		}
		return m, nil
	case actions.TogglePlayMsg:
		if msg.Err != nil {
			m.logger.Warn("toggle play failed", "reel_id", msg.ReelID, "err", msg.Err)
			return m.setStatus("Could not play reel: " + rootMessage(msg.Err))
		}
		if msg.Playing {
			return m.setStatus("Playing")
		}
		return m.setStatus("Paused")
	case actions.MediaLoadedMsg:
		return m.onMediaLoaded(msg)
	case actions.EngagementSuccessMsg:
		return m.setStatus(msg.Status)
	case actions.EngagementErrorMsg:
		if errors.Is(msg.Err, engagement.ErrEmptyComment) {
			return m.setStatus("Comment is empty")
		}
		if msg.Visible() {
			return m.setAlert(fmt.Sprintf("Could not %s reel: %s", actionVerb(msg.Action), failureText(msg.Err)))
		}
		return m, nil
	case actions.OpenURLSuccessMsg:
		return m.setStatus(msg.Status)
	case actions.OpenURLErrorMsg:
		return m.setAlert(msg.Err.Error())
	case actions.ViewRecordErrorMsg:
		m.logger.Warn("record view failed", "reel_id", msg.ReelID, "err", msg.Err)
		return m, nil
	case actions.PreferencesSaveErrorMsg:
		m.logger.Warn("save preferences failed", "err", msg.Err)
		return m.setStatus("Could not persist UI preferences")
	case actions.PlaybackTickMsg:
		return m, actions.PlaybackTickCmd(m.tickInterval)
	case actions.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		if msg.ID == -m.alertID {
			m.alert = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.loader != nil {
			m.loader.Close()
		}
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "esc":
		m.showHelp = false
		m.alert = ""
		return m, nil
	}
	if m.showHelp {
		return m, nil
	}

	switch msg.String() {
	case "r":
		return m.retry()
	case "n":
		m.nerdFooter = !m.nerdFooter
		return m, actions.SavePreferencesCmd(m.savePreferencesFn, m.preferences())
	}
	if m.store == nil || m.store.Len() == 0 {
		return m, nil
	}

	switch msg.String() {
	case "down", "j":
		return m.scrollTo(m.target + 1)
	case "up", "k":
		return m.scrollTo(m.target - 1)
	case " ":
		m.gesture()
		return m.tapVisible()
	case "m":
		m.gesture()
		if m.player.ToggleMute() {
			return m.setStatus("Muted")
		}
		return m.setStatus("Sound on")
	case "l":
		return m.engage(func(id string) tea.Cmd { return actions.LikeCmd(m.gateway, id) })
	case "s":
		return m.engage(func(id string) tea.Cmd { return actions.SaveCmd(m.gateway, id) })
	case "y":
		return m.engage(func(id string) tea.Cmd { return actions.ShareCmd(m.gateway, id) })
	case "o":
		return m.engage(func(id string) tea.Cmd {
			return actions.OpenURLCmd(engagement.ShareURL(m.origin, id), m.openURLFn, m.copyURLFn)
		})
	case "c":
		if _, ok := m.currentID(); ok && m.gateway != nil {
			m.composing = true
			m.commentText = ""
		}
		return m, nil
	case "1", "2", "3", "4", "5", "6":
		reaction := reels.ReactionTypes[int(msg.String()[0]-'1')]
		return m.engage(func(id string) tea.Cmd { return actions.ReactCmd(m.gateway, id, reaction) })
	}
	return m, nil
}

func (m Model) updateComposer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.composing = false
		m.commentText = ""
		return m, nil
	case tea.KeyEnter:
		text := m.commentText
		m.composing = false
		m.commentText = ""
		return m.engage(func(id string) tea.Cmd { return actions.CommentCmd(m.gateway, id, text) })
	case tea.KeyBackspace:
		if r := []rune(m.commentText); len(r) > 0 {
			m.commentText = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.commentText += " "
		return m, nil
	case tea.KeyRunes:
		m.commentText += string(msg.Runes)
		return m, nil
	case tea.KeyCtrlC:
		if m.loader != nil {
			m.loader.Close()
		}
		return m, tea.Quit
	}
	return m, nil
}

// tapVisible toggles the card on screen, which during a settle window is not
// yet the current reel.
func (m Model) tapVisible() (tea.Model, tea.Cmd) {
	index := m.visibleIndex()
	id, ok := m.store.IDAt(index)
	if !ok {
		return m, nil
	}
	var cmds []tea.Cmd
	if _, mounted := m.mounted[id]; !mounted {
		cmds = append(cmds, m.syncMounted(index)...)
	}
	cmds = append(cmds, actions.TogglePlayCmd(m.player, id))
	return m, tea.Batch(cmds...)
}

func (m Model) engage(build func(id string) tea.Cmd) (tea.Model, tea.Cmd) {
	id, ok := m.currentID()
	if !ok || m.gateway == nil {
		return m, nil
	}
	return m, build(id)
}

func (m Model) retry() (tea.Model, tea.Cmd) {
	if m.loader == nil {
		return m, nil
	}
	if m.store.Len() == 0 || m.store.Status() == feed.StatusFailed {
		cmd := m.beginReload()
		return m, cmd
	}
	id, ok := m.currentID()
	if !ok {
		return m, nil
	}
	if _, failed := m.mediaErr[id]; !failed {
		return m, nil
	}
	el, ok := m.mounted[id]
	if !ok {
		return m, nil
	}
	m.retrying[id] = true
	m.status = "Retrying video..."
	return m, actions.LoadMediaCmd(el)
}

func (m *Model) beginReload() tea.Cmd {
	req, err := m.loader.Begin(1)
	if err != nil {
		m.logger.Debug("reload not started", "err", err)
		return nil
	}
	m.loading = true
	m.err = nil
	return actions.LoadPageCmd(req)
}

func (m Model) onPageLoaded(msg actions.PageLoadSuccessMsg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if msg.Result.Reset {
		m.loading = false
		m.err = nil
		m.startup = fmt.Sprintf("page 1 in %dms (%d reels)", msg.Duration.Milliseconds(), msg.Result.Added)
		m.player.Reset()
		m.tracker.Reset(0)
		m.target = 0
		m.scrollSeq++
		m.scrollTop = 0
		m.scroll = tuistate.Scroll{}
		m.unmountAll()
		if m.store.Len() == 0 {
			return m, nil
		}
		cmds = append(cmds, m.syncMounted(0)...)
		cmds = append(cmds, actions.SwitchCmd(m.player, 0), m.recordView(0))
	} else {
		cmds = append(cmds, m.syncMounted(m.player.CurrentIndex())...)
	}
	if req, ok := m.loader.Next(m.player.CurrentIndex()); ok {
		cmds = append(cmds, actions.LoadPageCmd(req))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) onPageError(msg actions.PageLoadErrorMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.Err, feed.ErrSuperseded), errors.Is(msg.Err, context.Canceled):
		return m, nil
	case errors.Is(msg.Err, feed.ErrInitialLoad):
		m.loading = false
		m.err = msg.Err
		m.startup = "first page failed"
		return m, nil
	case msg.Page == 1:
		m.loading = false
		if reels.IsUnauthorized(msg.Err) {
			return m.setStatus(tokenRejected)
		}
		return m.setStatus("Could not reload reels")
	}
	// Later pages stop paginating quietly.
	return m, nil
}

func (m Model) scrollTo(index int) (tea.Model, tea.Cmd) {
	index = tuistate.ClampCursor(index, m.store.Len())
	if index == m.target && m.scroll.Done() {
		return m, nil
	}
	m.target = index
	if m.scroll.Done() {
		m.scroll = tuistate.NewScroll(m.scrollTop, m.itemOffset(index), m.scrollFrames)
	} else {
		m.scroll = m.scroll.Retarget(m.itemOffset(index))
	}
	m.scrollSeq++
	return m, actions.ScrollFrameCmd(m.scrollSeq, m.frameInterval)
}

func (m Model) onScrollFrame(msg actions.ScrollFrameMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.scrollSeq {
		return m, nil
	}
	m.scroll = m.scroll.Advance()
	m.scrollTop = m.scroll.Offset()

	cmds := m.observeViewport()
	if !m.scroll.Done() {
		cmds = append(cmds, actions.ScrollFrameCmd(m.scrollSeq, m.frameInterval))
	}
	return m, tea.Batch(cmds...)
}

// observeViewport feeds intersection signals for the current scroll offset
// to the tracker, falling back to the offset itself when no item crosses
// the threshold.
func (m Model) observeViewport() []tea.Cmd {
	item := m.itemHeight()
	geom := viewport.Geometry{ViewportHeight: item, ItemHeight: item, ScrollTop: m.scrollTop}
	var cmds []tea.Cmd
	crossed := false
	for _, sig := range geom.Intersections(m.store.Len()) {
		if sig.Ratio >= viewport.DefaultThreshold {
			crossed = true
		}
		if d := m.tracker.Observe(sig); d.Schedule {
			cmds = append(cmds, actions.SettleCmd(d.Generation, d.Delay))
		}
	}
	if !crossed {
		if d := m.tracker.Observe(geom.Scroll()); d.Schedule {
			cmds = append(cmds, actions.SettleCmd(d.Generation, d.Delay))
		}
	}
	return cmds
}

func (m Model) onSettle(msg actions.SettleMsg) (tea.Model, tea.Cmd) {
	index, ok := m.tracker.Settle(msg.Generation)
	if !ok {
		return m, nil
	}
	cmds := m.syncMounted(index)
	cmds = append(cmds, actions.SwitchCmd(m.player, index), m.recordView(index))
	if req, ok := m.loader.Next(index); ok {
		cmds = append(cmds, actions.LoadPageCmd(req))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) onMediaLoaded(msg actions.MediaLoadedMsg) (tea.Model, tea.Cmd) {
	retried := m.retrying[msg.ReelID]
	delete(m.retrying, msg.ReelID)
	if msg.Err != nil {
		m.logger.Info("media unavailable", "reel_id", msg.ReelID, "err", msg.Err)
		m.mediaErr[msg.ReelID] = rootMessage(msg.Err)
		if retried {
			m.status = ""
		}
		return m, nil
	}
	delete(m.mediaErr, msg.ReelID)
	if !retried {
		return m, nil
	}
	m.status = ""
	if id, ok := m.currentID(); ok && id == msg.ReelID {
		return m, actions.SwitchCmd(m.player, m.player.CurrentIndex())
	}
	return m, nil
}

// syncMounted keeps elements mounted for a small window around center and
// returns load commands for newly mounted ones.
func (m *Model) syncMounted(center int) []tea.Cmd {
	if m.newElement == nil || m.store == nil {
		return nil
	}
	n := m.store.Len()
	want := make(map[string]int)
	for i := max(0, center-mountBehind); i <= center+mountAhead && i < n; i++ {
		if id, ok := m.store.IDAt(i); ok {
			want[id] = i
		}
	}
	for id, el := range m.mounted {
		if _, keep := want[id]; keep {
			continue
		}
		m.player.Unmount(id)
		el.Pause()
		delete(m.mounted, id)
		delete(m.mediaErr, id)
		delete(m.retrying, id)
	}
	var cmds []tea.Cmd
	for id, i := range want {
		if _, ok := m.mounted[id]; ok {
			continue
		}
		r, ok := m.store.At(i)
		if !ok {
			continue
		}
		el := m.newElement(r)
		m.mounted[id] = el
		m.player.Mount(el)
		cmds = append(cmds, actions.LoadMediaCmd(el))
	}
	return cmds
}

func (m *Model) unmountAll() {
	for id, el := range m.mounted {
		m.player.Unmount(id)
		el.Pause()
		delete(m.mounted, id)
	}
	clear(m.mediaErr)
	clear(m.retrying)
}

func (m *Model) recordView(index int) tea.Cmd {
	id, ok := m.store.IDAt(index)
	if !ok || id == m.lastView {
		return nil
	}
	m.lastView = id
	m.viewCount++
	if m.views == nil {
		return nil
	}
	return actions.RecordViewCmd(m.views, id, m.nowFn())
}

func (m *Model) gesture() {
	if m.policy != nil {
		m.policy.Gesture()
	}
}

func (m Model) currentID() (string, bool) {
	if m.player == nil || m.store == nil {
		return "", false
	}
	return m.store.IDAt(m.player.CurrentIndex())
}

func (m Model) setStatus(status string) (tea.Model, tea.Cmd) {
	m.status = status
	m.statusID++
	return m, actions.ClearStatusCmd(m.statusID, m.statusTTL)
}

func (m Model) setAlert(alert string) (tea.Model, tea.Cmd) {
	m.alert = alert
	m.alertID++
	return m, actions.ClearStatusCmd(-m.alertID, m.alertTTL)
}

func (m Model) itemHeight() float64 {
	return float64(tuistate.CardHeight(m.height, false))
}

func (m Model) itemOffset(index int) float64 {
	return float64(index) * m.itemHeight()
}

// visibleIndex is the item that covers most of the viewport.
func (m Model) visibleIndex() int {
	if m.store == nil {
		return 0
	}
	return tuistate.ClampCursor(int(math.Round(m.scrollTop/m.itemHeight())), m.store.Len())
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(view.Toolbar(m.nerdFooter, m.composing))
	b.WriteString("\n\n")

	switch {
	case m.showHelp:
		b.WriteString(m.helpView())
		b.WriteString("\n")
	case m.store == nil:
		b.WriteString("No feed configured.\n")
	case m.store.Len() == 0 && m.err != nil:
		detail := m.err.Error()
		if reels.IsUnauthorized(m.err) {
			detail = tokenRejected
		}
		b.WriteString(view.ErrorPanel(detail, m.theme))
		b.WriteString("\n")
	case m.store.Len() == 0 && m.loading:
		b.WriteString("Loading reels...\n")
	case m.store.Len() == 0:
		b.WriteString("No reels available.\n")
	default:
		b.WriteString(m.cardView())
		b.WriteString("\n")
		if m.height >= 34 {
			b.WriteString("\n")
			b.WriteString(view.UpNext(m.store.Snapshot(), m.visibleIndex(), 3, max(20, m.width-2), m.theme))
		}
	}

	if m.alert != "" {
		b.WriteString(view.Alert(m.alert, m.width, m.theme))
		b.WriteString("\n")
	}
	if m.composing {
		b.WriteString(m.theme.MetaLabel.Render("comment> "))
		b.WriteString(m.commentText)
		b.WriteString("▌\n")
	}
	b.WriteString("\n")
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	return b.String()
}

func (m Model) header() string {
	title := m.theme.Title.Render("Reels")
	if m.store == nil {
		return title
	}
	return title + " " + m.theme.ModePill.Render(m.store.Mode().String())
}

func (m Model) cardView() string {
	index := m.visibleIndex()
	r, ok := m.store.At(index)
	if !ok {
		return ""
	}
	snap := m.player.Snapshot()
	in := view.CardInput{
		Reel:     r,
		ViewerID: m.viewerID,
		Index:    index,
		Total:    m.store.Len(),
		Current:  index == snap.Current,
		State:    snap.State,
		Muted:    true,
		Paused:   true,
		MediaErr: m.mediaErr[r.ID],
		Width:    max(30, m.width),
		Height:   tuistate.CardHeight(m.height, m.status != ""),
	}
	if r.Duration != nil {
		in.Duration = *r.Duration
	}
	if el, ok := m.player.Element(r.ID); ok {
		in.Muted = el.Muted()
		in.Paused = el.Paused()
		in.Position = el.CurrentTime()
		if clip, ok := el.(*media.Clip); ok {
			in.Duration = clip.Duration()
		}
	}
	return view.Card(in, m.theme)
}

func (m Model) footer() string {
	if m.store == nil {
		return ""
	}
	cursor := m.store.Cursor()
	in := view.FooterInput{
		Mode:    m.store.Mode().String(),
		Page:    cursor.Page,
		Shown:   m.store.Len(),
		Current: m.player.CurrentIndex(),
		HasNext: cursor.HasNextPage,
		Loading: m.loader.InFlight() > 0,
		Views:   m.viewCount,
	}
	if !m.nerdFooter {
		return view.CompactFooter(in, m.theme)
	}
	snap := m.player.Snapshot()
	return view.NerdFooter(view.NerdFooterInput{
		FooterInput: in,
		State:       snap.State.String(),
		Muted:       snap.GlobalMuted,
		Feed:        m.store.Status().String(),
		InFlight:    m.loader.InFlight(),
		Mounted:     len(m.mounted),
	})
}

func (m Model) messagePanel() string {
	warning := ""
	if m.err != nil {
		warning = m.err.Error()
	}
	if !m.nerdFooter {
		return view.CompactMessage(m.loading, m.err != nil, m.status, warning, m.theme)
	}
	status := "-"
	if m.status != "" {
		status = m.status
	}
	if warning == "" {
		warning = "-"
	}
	state := "idle"
	if m.player != nil {
		state = m.player.Snapshot().State.String()
	}
	return view.NerdMessage(status, warning, state, m.startup)
}

func (m Model) helpView() string {
	lines := []string{
		"Scrolling:",
		"  j/k or arrows scroll one reel; playback follows once the scroll settles",
		"Playback:",
		"  space play/pause the current reel, m toggle sound for the feed",
		"Engagement:",
		"  l like, s save, y share (copies the link), o open in browser, c comment",
		"  1 like, 2 love, 3 haha, 4 wow, 5 sad, 6 angry (one reaction per reel)",
		"Recovery:",
		"  r retry the first page or a video that failed to load",
		"Options:",
		"  n nerd footer, esc dismiss alert, ? close help, q quit",
	}
	return strings.Join(lines, "\n")
}

func (m *Model) ApplyPreferences(prefs storage.Preferences) {
	m.nerdFooter = prefs.NerdFooter
}

func (m *Model) SetPreferencesSaver(saveFn func(context.Context, storage.Preferences) error) {
	m.savePreferencesFn = saveFn
}

func (m Model) preferences() storage.Preferences {
	prefs := storage.Preferences{NerdFooter: m.nerdFooter}
	if m.store != nil {
		prefs.Source = m.store.Mode().String()
	}
	return prefs
}

func actionVerb(action engagement.Action) string {
	if action == engagement.ActionReaction {
		return "react to"
	}
	return string(action)
}

const tokenRejected = "token rejected by the server, check REELS_TOKEN"

func failureText(err error) string {
	if reels.IsUnauthorized(err) {
		return tokenRejected
	}
	return rootMessage(err)
}

// rootMessage is the innermost error text, which reads better in a
// one-line status than the full wrap chain.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
