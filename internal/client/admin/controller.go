package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"news-portal/internal/domain/entity"
	"news-portal/internal/utils/text"
)

// API is the part of the article API the controller drives.
type API interface {
	List(ctx context.Context, q Query) (Page, error)
	Create(ctx context.Context, s Submission) (Article, error)
	Update(ctx context.Context, id string, s Submission) (Article, error)
	Delete(ctx context.Context, id string) error
}

// Mode tells whether a draft creates a new article or edits one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Draft fields accepted by SetField.
var draftFields = []string{"title", "summary", "content", "category", "author"}

// Selection is a file picked for one media slot.
type Selection struct {
	Path    string
	Preview Preview
}

// Draft is the article being written.
type Draft struct {
	Mode     Mode
	TargetID string

	Title    string
	Summary  string
	Content  string
	Category string
	Author   string

	Selections map[entity.MediaSlot]*Selection
}

func (d *Draft) field(name string) *string {
	switch name {
	case "title":
		return &d.Title
	case "summary":
		return &d.Summary
	case "content":
		return &d.Content
	case "category":
		return &d.Category
	case "author":
		return &d.Author
	}
	return nil
}

// Level of a notification.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification is a message for the operator.
type Notification struct {
	Level   Level
	Field   string
	Message string
}

// State is everything the controller manages.
type State struct {
	Articles      []Article
	Page          Pagination
	Draft         *Draft
	Notifications []Notification
}

var (
	ErrNoDraft      = errors.New("no draft open")
	ErrUnknownField = errors.New("unknown draft field")
)

// Controller applies transitions to a State. It is not safe for concurrent use.
type Controller struct {
	api      API
	previews PreviewStore
	state    *State
}

// NewController returns a controller over state.
func NewController(api API, previews PreviewStore, state *State) *Controller {
	return &Controller{api: api, previews: previews, state: state}
}

// State returns the managed state.
func (c *Controller) State() *State { return c.state }

// NewDraft opens an empty create draft, discarding any open draft.
func (c *Controller) NewDraft() *Draft {
	c.Discard()
	c.state.Draft = &Draft{Mode: ModeCreate, Selections: map[entity.MediaSlot]*Selection{}}
	return c.state.Draft
}

// Edit opens a draft prefilled from a.
func (c *Controller) Edit(a Article) *Draft {
	c.Discard()
	c.state.Draft = &Draft{
		Mode:       ModeEdit,
		TargetID:   a.ID,
		Title:      a.Title,
		Summary:    a.Summary,
		Content:    a.Content,
		Category:   a.Category,
		Author:     a.Author,
		Selections: map[entity.MediaSlot]*Selection{},
	}
	return c.state.Draft
}

// SetField updates one text field. The summary is cut to
// entity.MaxSummaryLength characters.
func (c *Controller) SetField(name, value string) error {
	d := c.state.Draft
	if d == nil {
		return ErrNoDraft
	}
	dst := d.field(name)
	if dst == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if name == "summary" {
		value = text.TruncateRunes(value, entity.MaxSummaryLength)
	}
	*dst = value
	return nil
}

// Select picks a file for slot. A previous selection for the slot is released.
func (c *Controller) Select(slot entity.MediaSlot, path string) error {
	d := c.state.Draft
	if d == nil {
		return ErrNoDraft
	}
	if !slices.Contains(entity.MediaSlots, slot) {
		return fmt.Errorf("unknown media slot %q", slot)
	}
	preview, err := c.previews.Acquire(path)
	if err != nil {
		return err
	}
	if old := d.Selections[slot]; old != nil {
		release(old)
	}
	d.Selections[slot] = &Selection{Path: path, Preview: preview}
	return nil
}

// Unselect drops the selection for slot.
func (c *Controller) Unselect(slot entity.MediaSlot) {
	d := c.state.Draft
	if d == nil {
		return
	}
	if old := d.Selections[slot]; old != nil {
		release(old)
		delete(d.Selections, slot)
	}
}

// Discard releases every preview and clears the draft. It never contacts
// the server and is a no-op without a draft.
func (c *Controller) Discard() {
	d := c.state.Draft
	if d == nil {
		return
	}
	for _, sel := range d.Selections {
		release(sel)
	}
	c.state.Draft = nil
}

// Submit sends the draft. On success the returned article is merged into
// the list, and the draft is cleared. On failure the list is untouched,
// the draft is kept and notifications describe the problem.
func (c *Controller) Submit(ctx context.Context) (Article, error) {
	d := c.state.Draft
	if d == nil {
		return Article{}, ErrNoDraft
	}

	sub := Submission{Fields: map[string]string{}, Files: map[entity.MediaSlot]string{}}
	for _, name := range draftFields {
		v := *d.field(name)
		// 編集時は空欄を送らない（サーバー側の値を残す）
		if d.Mode == ModeEdit && strings.TrimSpace(v) == "" {
			continue
		}
		sub.Fields[name] = v
	}
	for slot, sel := range d.Selections {
		sub.Files[slot] = sel.Path
	}

	var (
		art Article
		err error
	)
	if d.Mode == ModeEdit {
		art, err = c.api.Update(ctx, d.TargetID, sub)
	} else {
		art, err = c.api.Create(ctx, sub)
	}
	if err != nil {
		c.notifyError("failed to save article", err)
		return Article{}, err
	}

	if d.Mode == ModeEdit {
		c.replace(art)
		c.notify(LevelInfo, "article updated")
	} else {
		c.state.Articles = append([]Article{art}, c.state.Articles...)
		c.notify(LevelInfo, "article created")
	}
	c.Discard()
	return art, nil
}

// Load replaces the list with the page selected by q.
func (c *Controller) Load(ctx context.Context, q Query) error {
	page, err := c.api.List(ctx, q)
	if err != nil {
		c.notifyError("failed to load articles", err)
		return err
	}
	c.state.Articles = page.Articles
	c.state.Page = page.Pagination
	return nil
}

// Remove deletes the article and drops it from the list.
func (c *Controller) Remove(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, id); err != nil {
		c.notifyError("failed to delete article", err)
		return err
	}
	c.state.Articles = slices.DeleteFunc(c.state.Articles, func(a Article) bool { return a.ID == id })
	if d := c.state.Draft; d != nil && d.Mode == ModeEdit && d.TargetID == id {
		c.Discard()
	}
	c.notify(LevelInfo, "article deleted")
	return nil
}

// DrainNotifications returns and clears pending notifications.
func (c *Controller) DrainNotifications() []Notification {
	out := c.state.Notifications
	c.state.Notifications = nil
	return out
}

func (c *Controller) replace(art Article) {
	for i := range c.state.Articles {
		if c.state.Articles[i].ID == art.ID {
			c.state.Articles[i] = art
			return
		}
	}
}

func (c *Controller) notify(level Level, msg string) {
	c.state.Notifications = append(c.state.Notifications, Notification{Level: level, Message: msg})
}

// notifyError adds one notification per field error, or one generic one.
func (c *Controller) notifyError(generic string, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		for _, f := range apiErr.Fields {
			c.state.Notifications = append(c.state.Notifications, Notification{
				Level: LevelError, Field: f.Field, Message: f.Message,
			})
		}
		return
	}
	msg := generic
	if apiErr != nil && apiErr.Message != "" {
		msg = generic + ": " + apiErr.Message
	}
	c.state.Notifications = append(c.state.Notifications, Notification{Level: LevelError, Message: msg})
}

func release(sel *Selection) {
	if sel.Preview == nil {
		return
	}
	if err := sel.Preview.Release(); err != nil {
		slog.Warn("failed to release preview", slog.String("path", sel.Path), slog.Any("error", err))
	}
}
