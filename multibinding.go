package weft

// mapKeyConflict records two map contributions with equal map-key values
// aggregated into the same map binding.
type mapKeyConflict struct {
	mapKey string
	first  declaration
	second declaration
}

// aggregateMultibinding merges the contributions of a resolved multibinding
// key into one synthesized binding.
//
// The element order is the contribution order fixed by the resolver:
// root-most component first, module breadth-first within a component,
// declaration order within a module. Duplicate bulk elements-into-collection
// contributions for the same contribution key collapse to one. A key
// declared explicitly with zero contributions yields a valid empty
// aggregate, never a missing binding.
//
// The aggregate is owned by the child-most component that declares or
// contributes to it; ancestors' contributions are folded into that node.
func aggregateMultibinding(res resolution) (*Binding, []mapKeyConflict) {
	kind := KindMultiboundSet
	if res.mapBinding {
		kind = KindMultiboundMap
	}
	if res.explicit != nil {
		kind = res.explicit.spec.Kind
	}

	owner := deepestOwner(res)

	binding := &Binding{
		Kind:  kind,
		Key:   res.key,
		Owner: owner,
	}

	var conflicts []mapKeyConflict
	seenBulk := make(map[Key]bool)
	firstByMapKey := make(map[string]declaration)

	for _, contribution := range res.contributions {
		if contribution.spec.ElementsIntoSet {
			if seenBulk[contribution.spec.Key] {
				continue
			}
			seenBulk[contribution.spec.Key] = true
		}

		if kind == KindMultiboundMap {
			mapKey := contribution.spec.MapKey
			if first, dup := firstByMapKey[mapKey]; dup {
				conflicts = append(conflicts, mapKeyConflict{
					mapKey: mapKey,
					first:  first,
					second: contribution,
				})
			} else {
				firstByMapKey[mapKey] = contribution
			}
		}

		binding.Requests = append(binding.Requests, Request{
			Key:  contribution.spec.Key,
			Kind: RequestInstance,
		})
	}

	if res.explicit != nil {
		binding.DeclaredIn = res.explicit.module
	} else if len(res.contributions) > 0 {
		binding.DeclaredIn = res.contributions[0].module
	}

	return binding, conflicts
}

// deepestOwner returns the child-most owner path among the explicit
// declaration and every contribution.
func deepestOwner(res resolution) ComponentPath {
	var owner ComponentPath
	has := false
	consider := func(p ComponentPath) {
		if !has || p.Len() > owner.Len() {
			owner = p
			has = true
		}
	}
	if res.explicit != nil {
		consider(res.explicit.owner)
	}
	for _, c := range res.contributions {
		consider(c.owner)
	}
	return owner
}
