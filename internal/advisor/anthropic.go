package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/draftroom/draftroom/internal/engine"
)

const DefaultModel = "claude-sonnet-4-5-20250929"

// How much of the eligible pool the prompt shows; the board past this depth
// rarely changes a pick and only burns tokens.
const promptPoolDepth = 30

// Anthropic asks a Claude model for a candidate pick in the participant's
// declared archetype voice.
type Anthropic struct {
	client anthropic.Client
	model  anthropic.Model
	log    *zap.Logger
}

func NewAnthropic(apiKey, model string, log *zap.Logger) *Anthropic {
	if model == "" {
		model = DefaultModel
	}
	return &Anthropic{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
		log:    log,
	}
}

type candidateJSON struct {
	PlayerID   string  `json:"player_id"`
	Rationale  string  `json:"rationale"`
	Confidence float64 `json:"confidence"`
}

func (a *Anthropic) Propose(ctx context.Context, req Request) (Candidate, error) {
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt(req.Participant.Archetype)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt(req))),
		},
	})
	if err != nil {
		return Candidate{}, fmt.Errorf("anthropic: %w", err)
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return Candidate{}, fmt.Errorf("anthropic: no text content in response")
	}

	var parsed candidateJSON
	if err := json.Unmarshal([]byte(extractJSON(text)), &parsed); err != nil {
		return Candidate{}, fmt.Errorf("anthropic: parse candidate: %w", err)
	}

	player, ok := findEligible(req.Eligible, parsed.PlayerID)
	if !ok {
		return Candidate{}, fmt.Errorf("anthropic: proposed ineligible player %q", parsed.PlayerID)
	}
	if parsed.Confidence < 0 || parsed.Confidence > 1 {
		parsed.Confidence = 0.5
	}

	a.log.Debug("advisor proposal",
		zap.String("draft", req.DraftID),
		zap.Int("pick", req.PickNumber),
		zap.String("archetype", req.Participant.Archetype),
		zap.String("player", player.Name),
		zap.Float64("confidence", parsed.Confidence))

	return Candidate{
		PlayerID:   player.ID,
		Position:   player.Position,
		Rationale:  parsed.Rationale,
		Confidence: parsed.Confidence,
	}, nil
}

func systemPrompt(archetype string) string {
	return fmt.Sprintf(`You are a drafting advisor playing the %q strategy archetype.
Pick exactly one player from the eligible list you are given.
Respond with a single JSON object and nothing else:
{"player_id": "...", "rationale": "one or two sentences in your archetype's voice", "confidence": 0.0-1.0}`, archetype)
}

func userPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Draft %s, pick %d (round %d). You are %s.\n",
		req.DraftID, req.PickNumber, req.Round, req.Participant.Name)

	fmt.Fprintf(&b, "Your roster so far:")
	if len(req.Roster.Slots) == 0 {
		b.WriteString(" empty")
	}
	for slot, id := range req.Roster.Slots {
		fmt.Fprintf(&b, " %s=%s", slot, id)
	}
	b.WriteString("\n")

	if len(req.RecentPicks) > 0 {
		b.WriteString("Recent picks:\n")
		for _, p := range req.RecentPicks {
			fmt.Fprintf(&b, "  #%d participant %d took %s (%s)\n", p.PickNumber, p.Participant, p.PlayerID, p.Position)
		}
	}

	fmt.Fprintf(&b, "Board read: %s\n", req.BoardSummary)

	b.WriteString("Eligible players (id, name, position, rank, age, team):\n")
	pool := req.Eligible
	if len(pool) > promptPoolDepth {
		pool = pool[:promptPoolDepth]
	}
	for _, p := range pool {
		fmt.Fprintf(&b, "  %s %s %s rank=%d age=%d %s\n", p.ID, p.Name, p.Position, p.Rank, p.Age, p.Team)
	}
	return b.String()
}

// extractJSON trims any prose the model wrapped around the JSON object.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}

func findEligible(eligible []engine.Player, id string) (engine.Player, bool) {
	for _, p := range eligible {
		if p.ID == id {
			return p, true
		}
	}
	return engine.Player{}, false
}
