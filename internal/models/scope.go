package models

// OwnerSet is the set of admin ids whose records an actor may access.
// An unrestricted set applies no filter at all.
type OwnerSet struct {
	Unrestricted bool
	IDs          []string
}

func UnrestrictedOwners() OwnerSet {
	return OwnerSet{Unrestricted: true}
}

func NewOwnerSet(ids ...string) OwnerSet {
	return OwnerSet{IDs: ids}
}

// SQLFilter returns the array bound to `($n::text[] IS NULL OR col = ANY($n))`.
// nil means no filter; a restricted empty set still filters everything out.
func (set OwnerSet) SQLFilter() []string {
	if set.Unrestricted {
		return nil
	}
	if set.IDs == nil {
		return []string{}
	}
	return set.IDs
}

func (set OwnerSet) Contains(id string) bool {
	if set.Unrestricted {
		return true
	}
	for _, ownerID := range set.IDs {
		if ownerID == id {
			return true
		}
	}
	return false
}
