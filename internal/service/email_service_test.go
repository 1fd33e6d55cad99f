package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/lepanier/lepanier-api/internal/config"
	"github.com/lepanier/lepanier-api/internal/models"

	"github.com/shopspring/decimal"
)

func TestBuildOrderStatusContent(t *testing.T) {
	tests := []struct {
		name                string
		status              string
		deliveryInfo        string
		wantSubjectContains []string
		wantBodyContains    []string
	}{
		{
			name:                "confirmed",
			status:              "confirmed",
			wantSubjectContains: []string{"LP-1001", "confirmed"},
			wantBodyContains:    []string{"order LP-1001", "42.50 CHF", "confirmed"},
		},
		{
			name:                "preparing_with_delivery_info",
			status:              "preparing",
			deliveryInfo:        "Pickup at Le Panier Vevey on 2025-03-10.",
			wantSubjectContains: []string{"being prepared"},
			wantBodyContains:    []string{"Pickup at Le Panier Vevey"},
		},
		{
			name:                "unknown_status_passthrough",
			status:              "archived",
			wantSubjectContains: []string{"archived"},
			wantBodyContains:    []string{"archived"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body := buildOrderStatusContent(OrderStatusEmailInput{
				OrderNo:      "LP-1001",
				Status:       tt.status,
				Amount:       models.NewMoneyFromDecimal(decimal.RequireFromString("42.5")),
				Currency:     "CHF",
				DeliveryInfo: tt.deliveryInfo,
			})
			for _, want := range tt.wantSubjectContains {
				if !strings.Contains(subject, want) {
					t.Fatalf("subject %q missing %q", subject, want)
				}
			}
			for _, want := range tt.wantBodyContains {
				if !strings.Contains(body, want) {
					t.Fatalf("body %q missing %q", body, want)
				}
			}
		})
	}
}

func TestBuildDeliveryChangeContent(t *testing.T) {
	subject, body := buildDeliveryChangeContent(DeliveryChangeEmailInput{
		OrderNo: "LP-2002",
		Method:  "PICKUP",
		Note:    "Delivery changed to store pickup at Le Panier Vevey on 2025-03-10",
	})
	if !strings.Contains(subject, "LP-2002") {
		t.Fatalf("subject %q missing order number", subject)
	}
	if !strings.Contains(body, "store pickup at Le Panier Vevey") {
		t.Fatalf("body %q missing change note", body)
	}
}

func TestSendTextEmailGuards(t *testing.T) {
	disabled := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := disabled.sendTextEmail("a@b.ch", "s", "b"); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}

	unconfigured := NewEmailService(&config.EmailConfig{Enabled: true})
	if err := unconfigured.sendTextEmail("a@b.ch", "s", "b"); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected ErrEmailServiceNotConfigured, got %v", err)
	}

	configured := NewEmailService(&config.EmailConfig{
		Enabled: true,
		Host:    "smtp.example.ch",
		Port:    587,
		From:    "shop@lepanier.ch",
	})
	if err := configured.sendTextEmail("not-an-address", "s", "b"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	cases := map[string]bool{
		"550 5.1.1 recipient address rejected": true,
		"user unknown":                         true,
		"connection refused":                   false,
		"550 storage quota exceeded":           false,
	}
	for message, want := range cases {
		if got := isEmailRecipientRejected(errors.New(message)); got != want {
			t.Fatalf("message %q: expected %v, got %v", message, want, got)
		}
	}
}
