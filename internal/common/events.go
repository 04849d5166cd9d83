package common

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/questdrop/backend/pkg/pubsub"
	"github.com/questdrop/backend/pkg/xcontext"
)

// QuestEventTopic carries the lifecycle stream consumed by the indexer.
// Messages are keyed by quest id so one quest's events stay in order.
const QuestEventTopic = "quest-events"

const (
	QuestCreatedEvent       = "quest_created"
	QuestSubmittedEvent     = "quest_submitted"
	QuestVerifiedEvent      = "quest_verified"
	QuestRejectedEvent      = "quest_rejected"
	RewardDistributedEvent  = "reward_distributed"
	QuestStatusUpdatedEvent = "quest_status_updated"
	NftMintedEvent          = "nft_minted"
)

type QuestEvent struct {
	Type      string          `json:"type"`
	QuestID   int64           `json:"quest_id"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

type QuestCreatedData struct {
	Title        string `json:"title"`
	RewardAmount int64  `json:"reward_amount"`
	CreatedBy    string `json:"created_by"`
}

type QuestSubmittedData struct {
	SubmissionID int64  `json:"submission_id"`
	UserID       string `json:"user_id"`
	ProofURL     string `json:"proof_url"`
}

type QuestVerifiedData struct {
	SubmissionID int64  `json:"submission_id"`
	UserID       string `json:"user_id"`
	Status       string `json:"status"`
	VerifierID   string `json:"verifier_id"`
	NftTokenID   int64  `json:"nft_token_id"`
}

type QuestRejectedData struct {
	SubmissionID int64  `json:"submission_id"`
	UserID       string `json:"user_id"`
	VerifierID   string `json:"verifier_id"`
	Reason       string `json:"reason"`
}

type RewardDistributedData struct {
	SubmissionID int64  `json:"submission_id"`
	UserID       string `json:"user_id"`
	Amount       int64  `json:"amount"`
	TxHash       string `json:"tx_hash"`
}

type QuestStatusUpdatedData struct {
	IsActive bool `json:"is_active"`
}

type NftMintedData struct {
	TokenID int64  `json:"token_id"`
	UserID  string `json:"user_id"`
	TxHash  string `json:"tx_hash"`
}

// EmitQuestEvent publishes after the surrounding transaction has committed,
// so delivery is at-least-once. A publish failure is logged, never returned,
// the database is the source of truth and the indexer can re-sync.
func EmitQuestEvent(
	ctx context.Context, publisher pubsub.Publisher, eventType string, questID int64, data any,
) {
	rawData, err := json.Marshal(data)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal %s event data: %v", eventType, err)
		return
	}

	event := QuestEvent{
		Type:      eventType,
		QuestID:   questID,
		Timestamp: time.Now(),
		Data:      rawData,
	}

	msg, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal %s event: %v", eventType, err)
		return
	}

	pack := &pubsub.Pack{
		Key: []byte(strconv.FormatInt(questID, 10)),
		Msg: msg,
	}

	if err := publisher.Publish(ctx, QuestEventTopic, pack); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish %s event of quest %d: %v", eventType, questID, err)
	}
}
