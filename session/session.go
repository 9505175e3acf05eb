// Package session implements the menu editing session: one in-memory
// document per menu, mutated synchronously, persisted asynchronously through
// the persistence gateway with coalescing, and moved through the
// draft/publish lifecycle.
package session

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"menu-builder-api/document"
	"menu-builder-api/gateway"
	"menu-builder-api/menuerrors"
	"menu-builder-api/models"
	"menu-builder-api/preview"
	"menu-builder-api/statemachine"
)

// TopicMenuChanged is published on the event bus after every accepted
// mutation; subscribers re-project the preview from the session.
const TopicMenuChanged = "menu:changed"

var slugPattern = regexp.MustCompile(`^[a-z0-9-]{3,}$`)

// timeNow is swapped out in tests
var timeNow = time.Now

// Session owns the editing state of one menu document. Mutations are
// synchronous; persistence runs in the background and never blocks editing.
type Session struct {
	menuID string
	gw     gateway.Gateway
	bus    EventBus.Bus

	mu     sync.Mutex
	cond   *sync.Cond
	store  *document.Store
	status statemachine.LifecycleStatus
	// lastErr holds the most recent persist failure until the next attempt
	lastErr error
	// saving marks an in-flight persist; dirty marks a mutation that arrived
	// while it was in flight and needs a follow-up persist
	saving bool
	dirty  bool
	// stale marks that the document changed since the last publish
	stale bool
}

// New starts a session over a loaded document. The document is assumed to
// match the persisted draft, so the session starts out Saved.
func New(menuID string, doc *models.MenuDocument, gw gateway.Gateway, bus EventBus.Bus) *Session {
	s := &Session{
		menuID: menuID,
		gw:     gw,
		bus:    bus,
		store:  document.NewStore(doc),
		status: statemachine.StatusSaved,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// MenuID returns the id of the menu this session edits
func (s *Session) MenuID() string { return s.menuID }

// Status returns the current lifecycle status and the last persist error
func (s *Session) Status() (statemachine.LifecycleStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.lastErr
}

// Document returns a deep copy of the current document
func (s *Session) Document() *models.MenuDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Document().Clone()
}

// Preview projects the latest in-memory document. Callers must render every
// surface from one Preview result so no surface lags behind another.
func (s *Session) Preview() []preview.SectionPreview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return preview.Project(s.store.Document())
}

// Apply runs one mutation against the document store. On success the
// session becomes Unsaved, a persist is scheduled and subscribers are
// notified. On error nothing changes and no persist is scheduled.
func (s *Session) Apply(mutate func(*document.Store) error) error {
	s.mu.Lock()
	if err := mutate(s.store); err != nil {
		s.mu.Unlock()
		return err
	}
	s.markDirtyLocked()
	s.mu.Unlock()
	s.bus.Publish(TopicMenuChanged, s.menuID)
	return nil
}

// DeleteSection removes a section once the caller has confirmed. A false
// confirmation is a no-op, not an error; confirmation flows are async and
// resolved before the core is called.
func (s *Session) DeleteSection(id int, confirmed bool) error {
	if !confirmed {
		return nil
	}
	return s.Apply(func(st *document.Store) error {
		return st.DeleteSection(id)
	})
}

// DeleteColumn removes a column once the caller has confirmed
func (s *Session) DeleteColumn(sectionID int, name string, confirmed bool) error {
	if !confirmed {
		return nil
	}
	return s.Apply(func(st *document.Store) error {
		return st.DeleteColumn(sectionID, name)
	})
}

// DeleteItem removes an item once the caller has confirmed
func (s *Session) DeleteItem(sectionID, index int, confirmed bool) error {
	if !confirmed {
		return nil
	}
	return s.Apply(func(st *document.Store) error {
		return st.DeleteItem(sectionID, index)
	})
}

// markDirtyLocked flags unsaved changes and schedules a persist. A persist
// already in flight is never cancelled; the follow-up is coalesced behind it.
func (s *Session) markDirtyLocked() {
	s.setStatusLocked(statemachine.TriggerMutate, statemachine.StatusUnsaved)
	if s.store.Document().PublishedSlug != "" {
		s.stale = true
	}
	if s.saving {
		s.dirty = true
		return
	}
	s.saving = true
	go s.persistLoop()
}

// persistLoop serializes persist calls for this session. Each iteration
// snapshots the document outside the gateway call so editing is never
// blocked by I/O.
func (s *Session) persistLoop() {
	for {
		s.mu.Lock()
		snapshot := s.store.Document().Clone()
		if s.status != statemachine.StatusSaving {
			s.setStatusLocked(statemachine.TriggerPersistStart, statemachine.StatusSaving)
		}
		s.mu.Unlock()

		err := s.gw.SaveDraft(context.Background(), s.menuID, snapshot)

		s.mu.Lock()
		if err != nil {
			// No automatic retry: the error is surfaced and the caller
			// re-triggers by mutating or saving again.
			s.lastErr = err
			s.setStatusLocked(statemachine.TriggerPersistFail, statemachine.StatusUnsaved)
			s.saving = false
			s.dirty = false
			s.cond.Broadcast()
			s.mu.Unlock()
			zap.S().Errorw("draft persist failed", "menu_id", s.menuID, "error", err)
			return
		}
		s.lastErr = nil
		if s.dirty {
			s.dirty = false
			s.mu.Unlock()
			continue
		}
		if snapshot.PublishedSlug != "" && s.stale {
			s.setStatusLocked(statemachine.TriggerPersistOK, statemachine.StatusNeedsPublish)
		} else {
			s.setStatusLocked(statemachine.TriggerPersistOK, statemachine.StatusSaved)
		}
		s.saving = false
		s.cond.Broadcast()
		s.mu.Unlock()
		return
	}
}

// Flush blocks until no persist is in flight. Intended for shutdown and tests.
func (s *Session) Flush() {
	s.mu.Lock()
	for s.saving {
		s.cond.Wait()
	}
	s.mu.Unlock()
}

// DiscardToSaved replaces the in-memory document with the last persisted
// draft snapshot
func (s *Session) DiscardToSaved(ctx context.Context) error {
	doc, err := s.gw.LoadDraft(ctx, s.menuID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.store = document.NewStore(doc)
	s.setStatusLocked(statemachine.TriggerDiscard, statemachine.StatusSaved)
	s.dirty = false
	s.lastErr = nil
	s.mu.Unlock()
	s.bus.Publish(TopicMenuChanged, s.menuID)
	return nil
}

// DiscardToPublished replaces the in-memory sections and style with the last
// published snapshot. The draft record on the gateway is left alone, so a
// publish is still pending and the session lands on NeedsPublish.
func (s *Session) DiscardToPublished(ctx context.Context) error {
	s.mu.Lock()
	slug := s.store.Document().PublishedSlug
	s.mu.Unlock()
	if slug == "" {
		return &menuerrors.NotFoundError{Resource: "published snapshot"}
	}
	pub, err := s.gw.GetPublished(ctx, slug)
	if err != nil {
		return err
	}

	s.mu.Lock()
	doc := s.store.Document()
	doc.Sections = make([]models.Section, len(pub.Sections))
	for i, sec := range pub.Sections {
		doc.Sections[i] = sec.Clone()
	}
	doc.Style = pub.Style
	s.store = document.NewStore(doc)
	s.setStatusLocked(statemachine.TriggerDiscard, statemachine.StatusNeedsPublish)
	s.dirty = false
	s.mu.Unlock()
	s.bus.Publish(TopicMenuChanged, s.menuID)
	return nil
}

// Publish validates the slug and writes a published snapshot through the
// gateway. Availability is only checked for a slug the menu has not
// published under before; republishing in place skips the check. On any
// failure the document's published fields are left untouched.
func (s *Session) Publish(ctx context.Context, slug, title, subtitle string) (*gateway.PublishResult, error) {
	if !slugPattern.MatchString(slug) {
		return nil, &menuerrors.SlugInvalidError{Slug: slug}
	}

	s.mu.Lock()
	snapshot := s.store.Document().Clone()
	s.mu.Unlock()

	if snapshot.PublishedSlug != slug {
		available, err := s.gw.CheckSlugAvailable(ctx, slug)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, &menuerrors.SlugTakenError{Slug: slug}
		}
	}

	result, err := s.gw.Publish(ctx, gateway.PublishRequest{
		MenuID:   s.menuID,
		Slug:     slug,
		Title:    title,
		Subtitle: subtitle,
		Sections: snapshot.Sections,
		Style:    snapshot.Style,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	doc := s.store.Document()
	doc.PublishedSlug = result.Slug
	doc.PublishedTitle = title
	doc.PublishedSubtitle = subtitle
	doc.Status = models.StatusPublished
	s.stale = false
	// Edits that raced the publish call keep the session Unsaved/Saving;
	// only an idle session settles to Saved here.
	if !s.saving && !s.dirty {
		s.setStatusLocked(statemachine.TriggerPublish, statemachine.StatusSaved)
	}
	// The draft record must learn the published slug, so a persist follows
	// even though the session reads as Saved.
	if s.saving {
		s.dirty = true
	} else {
		s.saving = true
		go s.persistLoop()
	}
	s.mu.Unlock()
	zap.S().Infow("menu published", "menu_id", s.menuID, "slug", result.Slug)
	return result, nil
}

// Export serializes the current sections to the interchange format
func (s *Session) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Export(timeNow())
}

// Import replaces the sections from an exported file and schedules a persist
func (s *Session) Import(data []byte) error {
	return s.Apply(func(st *document.Store) error {
		return st.Import(data)
	})
}

// setStatusLocked moves the session status, consulting the transition table.
// Transitions are valid by construction; a rejected one is a bug worth
// logging, not a reason to wedge the session.
func (s *Session) setStatusLocked(trigger statemachine.Trigger, to statemachine.LifecycleStatus) {
	if err := statemachine.CanTransition(s.status, to, trigger); err != nil {
		zap.S().Warnw("lifecycle transition rejected", "menu_id", s.menuID, "error", err)
	}
	s.status = to
}
