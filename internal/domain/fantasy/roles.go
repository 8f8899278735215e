package fantasy

// AssignRole gives a starter the captain or vice-captain armband. Whoever held
// that role before loses it, and the target's other armband is cleared so a
// player never holds both. RoleNone clears the target's role and is allowed for
// any member.
func AssignRole(squad Squad, memberID string, role Role) (Squad, error) {
	if !role.Valid() {
		return Squad{}, reject(KindInvalidRole,
			map[string]any{"member_id": memberID, "role": string(role)},
			"unknown role %q", role,
		)
	}

	idx := squad.indexOf(memberID)
	if idx < 0 {
		return Squad{}, reject(KindPlayerNotInSquad,
			map[string]any{"player_id": memberID},
			"player %s is not part of the squad", memberID,
		)
	}

	out := squad.Clone()
	if role == RoleNone {
		out.Members[idx].Role = RoleNone
		return out, nil
	}

	if !out.Members[idx].InStarting11 {
		return Squad{}, reject(KindRoleRequiresStarter,
			map[string]any{"member_id": memberID, "role": string(role)},
			"%s must be a starting player, %s is on the bench", role, memberID,
		)
	}

	for i := range out.Members {
		if i != idx && out.Members[i].Role == role {
			out.Members[i].Role = RoleNone
		}
	}
	out.Members[idx].Role = role
	return out, nil
}

// ToggleSpecialist flips a set-piece flag on the target. Turning it on needs a
// starter and revokes it from whoever held it; turning it off always succeeds.
func ToggleSpecialist(squad Squad, memberID string, kind SpecialistKind) (Squad, error) {
	if !kind.Valid() {
		return Squad{}, reject(KindInvalidRole,
			map[string]any{"member_id": memberID, "role": string(kind)},
			"unknown specialist kind %q", kind,
		)
	}

	idx := squad.indexOf(memberID)
	if idx < 0 {
		return Squad{}, reject(KindPlayerNotInSquad,
			map[string]any{"player_id": memberID},
			"player %s is not part of the squad", memberID,
		)
	}

	out := squad.Clone()
	if out.Members[idx].specialist(kind) {
		out.Members[idx].setSpecialist(kind, false)
		return out, nil
	}

	if !out.Members[idx].InStarting11 {
		return Squad{}, reject(KindRoleRequiresStarter,
			map[string]any{"member_id": memberID, "role": string(kind)},
			"%s taker must be a starting player, %s is on the bench", kind, memberID,
		)
	}

	for i := range out.Members {
		out.Members[i].setSpecialist(kind, i == idx)
	}
	return out, nil
}
