package models

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"lowercases and trims", []string{" React ", "NODE"}, []string{"react", "node"}},
		{"drops empties", []string{"go", "  ", ""}, []string{"go"}},
		{"nil input", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTags(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTrimTags_KeepsCasing(t *testing.T) {
	got := TrimTags([]string{" North America ", "", "Europe"})
	want := []string{"North America", "Europe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TrimTags = %v, want %v", got, want)
	}
}

func TestDeriveRequestType(t *testing.T) {
	tests := []struct {
		fromRole string
		toRole   string
		want     string
		ok       bool
	}{
		{RoleFounder, RoleFounder, RequestTypeCofounder, true},
		{RoleFounder, RoleInvestor, RequestTypeFounderToInvestor, true},
		{RoleInvestor, RoleFounder, RequestTypeInvestorToFounder, true},
		{RoleInvestor, RoleInvestor, "", false},
		{"", RoleFounder, "", false},
	}
	for _, tt := range tests {
		got, ok := DeriveRequestType(tt.fromRole, tt.toRole)
		if got != tt.want || ok != tt.ok {
			t.Errorf("DeriveRequestType(%q, %q) = (%q, %v), want (%q, %v)",
				tt.fromRole, tt.toRole, got, ok, tt.want, tt.ok)
		}
	}
}

func TestConnectionTypeForRequest(t *testing.T) {
	tests := []struct {
		requestType string
		want        string
		ok          bool
	}{
		{RequestTypeCofounder, ConnectionTypeCofounder, true},
		{RequestTypeFounderToInvestor, ConnectionTypeInvestor, true},
		{RequestTypeInvestorToFounder, ConnectionTypeInvestor, true},
		{"bogus", "", false},
	}
	for _, tt := range tests {
		got, ok := ConnectionTypeForRequest(tt.requestType)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ConnectionTypeForRequest(%q) = (%q, %v), want (%q, %v)",
				tt.requestType, got, ok, tt.want, tt.ok)
		}
	}
}

func TestChatRoomPartner(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	room := &ChatRoom{Participants: []primitive.ObjectID{a, b}}

	if got := room.Partner(a); got != b {
		t.Errorf("Partner(a) = %s, want %s", got.Hex(), b.Hex())
	}
	if got := room.Partner(b); got != a {
		t.Errorf("Partner(b) = %s, want %s", got.Hex(), a.Hex())
	}
	if got := room.Partner(primitive.NewObjectID()); got != a {
		t.Errorf("Partner(stranger) should return the first participant, got %s", got.Hex())
	}
}
