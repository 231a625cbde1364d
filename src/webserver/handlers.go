package webserver

import (
	"errors"
	"html"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stake-plus/expertdesk/src/consult"
	"github.com/stake-plus/expertdesk/src/events"
	"github.com/stake-plus/expertdesk/src/persona"
)

const unknownPersonaWarning = "相談したい専門家を選択してください。"

// Handlers serves the page and API on top of a consult.Service.
type Handlers struct {
	svc       *consult.Service
	pub       events.Publisher
	sanitizer *bluemonday.Policy
}

func NewHandlers(svc *consult.Service, pub events.Publisher) Handlers {
	if pub == nil {
		pub = events.Nop{}
	}

	// Answers are escaped before rendering; the policy only admits the line breaks we add.
	sanitizer := bluemonday.StrictPolicy()
	sanitizer.AllowElements("br")

	return Handlers{svc: svc, pub: pub, sanitizer: sanitizer}
}

func (h Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "model": h.svc.Model()})
}

func (h Handlers) Page(c *gin.Context) {
	selected := c.Query("persona")
	if p, err := h.svc.Registry().Resolve(selected); err == nil {
		selected = p.ID
	} else {
		selected = h.svc.Registry().IDs()[0]
	}
	c.HTML(http.StatusOK, "page", h.newView(selected, ""))
}

func (h Handlers) SubmitForm(c *gin.Context) {
	question := c.PostForm("question")

	p, err := h.svc.Registry().Resolve(c.PostForm("persona"))
	if err != nil {
		view := h.newView(h.svc.Registry().IDs()[0], question)
		view.Warning = unknownPersonaWarning
		c.HTML(http.StatusBadRequest, "page", view)
		return
	}

	view := h.newView(p.ID, question)
	if err := consult.ValidateQuestion(question); err != nil {
		view.Warning = consult.EmptyQuestionWarning
		c.HTML(http.StatusOK, "page", view)
		return
	}

	res := h.consult(c, "web", p, question)
	view.HasResult = true
	if res.OK() {
		view.Answer = h.renderAnswer(res.Answer())
	} else {
		view.Failure = res.Message()
	}
	c.HTML(http.StatusOK, "page", view)
}

type personaJSON struct {
	ID          string `json:"id"`
	Alias       string `json:"alias"`
	Description string `json:"description"`
	Caution     string `json:"caution"`
}

func (h Handlers) ListPersonas(c *gin.Context) {
	all := h.svc.Registry().All()
	out := make([]personaJSON, 0, len(all))
	for _, p := range all {
		out = append(out, personaJSON{ID: p.ID, Alias: p.Alias, Description: p.Description, Caution: p.Caution})
	}
	c.JSON(http.StatusOK, gin.H{"personas": out})
}

type consultRequest struct {
	Persona  string `json:"persona" binding:"required"`
	Question string `json:"question"`
}

func (h Handlers) ConsultJSON(c *gin.Context) {
	var req consultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	p, err := h.svc.Registry().Resolve(req.Persona)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, persona.ErrUnknownPersona) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"err": err.Error()})
		return
	}

	if err := consult.ValidateQuestion(req.Question); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"warning": consult.EmptyQuestionWarning})
		return
	}

	res := h.consult(c, "api", p, req.Question)
	if res.OK() {
		c.JSON(http.StatusOK, gin.H{"ok": true, "persona": p.ID, "answer": res.Answer()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": false, "persona": p.ID, "error": res.Message()})
}

func (h Handlers) consult(c *gin.Context, channel string, p persona.Persona, question string) consult.Result {
	start := time.Now()
	res := h.svc.Consult(c.Request.Context(), p.ID, question)
	events.PublishAsync(h.pub, events.Consultation{
		Channel:  channel,
		Persona:  p.Alias,
		Outcome:  res.Outcome().String(),
		Duration: time.Since(start),
	})
	return res
}

func (h Handlers) renderAnswer(answer string) template.HTML {
	escaped := html.EscapeString(answer)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>\n")
	return template.HTML(h.sanitizer.Sanitize(escaped))
}

func (h Handlers) newView(selected, question string) pageView {
	return pageView{
		Personas: h.svc.Registry().All(),
		Selected: selected,
		Question: question,
	}
}
