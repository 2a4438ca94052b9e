package league

import "testing"

func TestEntityKeySpacesAreDisjoint(t *testing.T) {
	team := TeamEntity(7)
	player := PlayerEntity("7")
	if team == player {
		t.Fatalf("team and player entities collide: %q", team)
	}

	id, ok := team.TeamID()
	if !ok || id != 7 {
		t.Errorf("expected team id 7, got %d ok=%v", id, ok)
	}
	if _, ok := player.TeamID(); ok {
		t.Error("player entity should not parse as a team id")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := Config{Window: WindowRolling4, Subject: SubjectTeam}
	if err := valid.validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
	if err := (Config{Window: "monthly", Subject: SubjectTeam}).validate(); err == nil {
		t.Error("expected error for unknown window policy")
	}
	if err := (Config{Window: WindowSeason, Subject: "league"}).validate(); err == nil {
		t.Error("expected error for unknown subject policy")
	}
}
