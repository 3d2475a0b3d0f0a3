package filter

import (
	"reflect"
	"testing"
)

func TestParseTeams(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"single", "Sharks", []string{"Sharks"}},
		{"trims spaces", " Sharks ,  Eagles", []string{"Sharks", "Eagles"}},
		{"drops blanks", "Sharks,,  ,Owls", []string{"Sharks", "Owls"}},
		{"keeps inner spaces", "FC Boulder U10", []string{"FC Boulder U10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTeams(tt.input)
			if !reflect.DeepEqual(got.Teams, tt.want) {
				t.Errorf("ParseTeams(%q).Teams = %v, want %v", tt.input, got.Teams, tt.want)
			}
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		team   string
		want   bool
	}{
		{"empty filter matches all", NewFilter(), "Sharks", true},
		{"exact match", &Filter{Teams: []string{"Sharks"}}, "Sharks", true},
		{"case-insensitive", &Filter{Teams: []string{"sharks"}}, "Sharks", true},
		{"no substring match", &Filter{Teams: []string{"Shark"}}, "Sharks", false},
		{"other team", &Filter{Teams: []string{"Eagles", "Owls"}}, "Sharks", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.team); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.team, got, tt.want)
			}
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	teams := []string{"Sharks", "Eagles", "Hawks", "Owls"}

	if got := NewFilter().Apply(teams); !reflect.DeepEqual(got, teams) {
		t.Errorf("empty filter Apply() = %v, want %v", got, teams)
	}

	f := ParseTeams("owls,sharks")
	want := []string{"Sharks", "Owls"}
	if got := f.Apply(teams); !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %v, want %v (discovery order)", got, want)
	}
}

func TestFilter_Unmatched(t *testing.T) {
	f := ParseTeams("Sharks, Penguins, eagles")
	got := f.Unmatched([]string{"Sharks", "Eagles"})
	if want := []string{"Penguins"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Unmatched() = %v, want %v", got, want)
	}
}

func TestFilter_String(t *testing.T) {
	if got := NewFilter().String(); got != "All teams" {
		t.Errorf("String() = %q, want %q", got, "All teams")
	}
	if got := ParseTeams("Sharks,Owls").String(); got != "Teams: Sharks, Owls" {
		t.Errorf("String() = %q", got)
	}
}
