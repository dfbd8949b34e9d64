package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"tailortalk/internal/chat"
	"tailortalk/internal/session"
	"tailortalk/pkg/datemath"
	"tailortalk/pkg/slotfinder"
)

// Chat loads or starts the session, lets the agent (or the fallback flow)
// answer and stores the updated conversation.
func (uc *implUseCase) Chat(ctx context.Context, input chat.ChatInput) (chat.ChatOutput, error) {
	msg := strings.TrimSpace(input.Message)
	if msg == "" {
		return chat.ChatOutput{}, chat.ErrEmptyMessage
	}
	if utf8.RuneCountInString(msg) > chat.MaxMessageLength {
		return chat.ChatOutput{}, chat.ErrMessageTooLong
	}
	if input.Timezone != "" {
		if _, ok := datemath.LoadZone(input.Timezone); !ok {
			return chat.ChatOutput{}, chat.ErrInvalidTimezone
		}
	}

	st, err := uc.loadOrCreate(ctx, input.SessionID, input.Timezone)
	if err != nil {
		uc.l.Errorf(ctx, "chat.usecase.Chat: %v", err)
		return chat.ChatOutput{}, err
	}
	if input.Timezone != "" && datemath.ZoneName(input.Timezone) != st.Timezone {
		st = st.WithTimezone(input.Timezone)
	}

	reply, next := uc.respond(ctx, st, msg)
	next = next.WithUserMessage(msg).WithAssistantMessage(reply)

	if err := uc.repo.Save(ctx, next); err != nil {
		uc.l.Errorf(ctx, "chat.usecase.Chat: save session %s: %v", next.SessionID, err)
		return chat.ChatOutput{}, err
	}

	channel := input.Channel
	if channel == "" {
		channel = chat.ChannelHTTP
	}
	uc.metrics.ObserveChatTurn(channel)

	return toOutput(next, reply), nil
}

// respond handles a bare slot number first, then asks the agent. The
// fallback flow answers when no agent is configured or the agent fails.
func (uc *implUseCase) respond(ctx context.Context, st session.State, msg string) (string, session.State) {
	if n, ok := slotNumber(msg); ok && selectable(st) {
		selected, err := st.SelectSlot(n)
		if err != nil {
			return fmt.Sprintf("Please pick a slot number between 1 and %d.", len(st.OfferedSlots)), st
		}
		st = selected
	}

	if uc.AgentReady() {
		reply, next, err := uc.agent.ProcessQuery(ctx, st, msg)
		if err == nil {
			return reply, next
		}
		uc.l.Warnf(ctx, "chat.usecase.respond: agent failed, using fallback: %v", err)
	}

	return uc.fallbackReply(ctx, st, msg)
}

func (uc *implUseCase) loadOrCreate(ctx context.Context, sessionID, timezone string) (session.State, error) {
	if sessionID == "" {
		sessionID = uc.newID()
	} else {
		st, err := uc.repo.Get(ctx, sessionID)
		if err == nil {
			return st, nil
		}
		if !errors.Is(err, session.ErrSessionNotFound) {
			return session.State{}, err
		}
	}

	if timezone == "" {
		timezone = uc.scheduling.DefaultTimezone()
	}
	return session.New(sessionID, timezone), nil
}

// selectable reports whether a slot number picks from the current offer.
// A pending selection can still be changed until it is booked.
func selectable(st session.State) bool {
	if len(st.OfferedSlots) == 0 {
		return false
	}
	return st.Step == session.StepOffered || st.Step == session.StepSelected
}

// slotNumber accepts "2", "#2" or "slot 2".
func slotNumber(msg string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(msg))
	s = strings.TrimPrefix(s, "slot")
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	s = strings.TrimRight(s, ".!")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func toOutput(st session.State, reply string) chat.ChatOutput {
	out := chat.ChatOutput{
		SessionID: st.SessionID,
		Reply:     reply,
		Step:      st.Step,
		Timezone:  st.Timezone,
		History:   st.History,
	}
	if st.Step == session.StepOffered {
		out.AvailableSlots = append([]slotfinder.Slot(nil), st.OfferedSlots...)
	}
	return out
}
