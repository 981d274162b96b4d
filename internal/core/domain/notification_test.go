package domain

import (
	"strings"
	"testing"
)

func TestNewNotificationID_UniqueUnderRapidCalls(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NewNotificationID()
		if !strings.HasPrefix(id, "ntf-") {
			t.Fatalf("id %q missing ntf- prefix", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestDefaultNotificationSettings(t *testing.T) {
	s := DefaultNotificationSettings()
	if !s.Enabled || !s.Achievements || !s.Warnings || !s.DistractionAlerts {
		t.Error("all notification categories must default on")
	}
	if s.Sound {
		t.Error("sound must default off")
	}
}

func TestNotificationSettings_AllowsType(t *testing.T) {
	s := DefaultNotificationSettings()

	for _, typ := range []NotificationType{
		NotificationAchievement, NotificationWarning, NotificationDistraction, NotificationSystem,
	} {
		if !s.AllowsType(typ) {
			t.Errorf("defaults must allow %s", typ)
		}
	}

	s.Achievements = false
	if s.AllowsType(NotificationAchievement) {
		t.Error("achievement toggle off must suppress achievements")
	}
	if !s.AllowsType(NotificationWarning) {
		t.Error("achievement toggle must not affect warnings")
	}

	s = DefaultNotificationSettings()
	s.Enabled = false
	for _, typ := range []NotificationType{
		NotificationAchievement, NotificationWarning, NotificationDistraction, NotificationSystem,
	} {
		if s.AllowsType(typ) {
			t.Errorf("master switch off must suppress %s", typ)
		}
	}
}
