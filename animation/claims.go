package animation

import "github.com/milk9111/scenetween/scene"

// claims tracks, per entity, which animation instance currently owns each
// animated property path. Starting an instance replaces the previous owner
// (last start wins) instead of scanning sibling instances.
var claims = map[*scene.Entity]map[string]*Animation{}

// claim makes a the owner of path on e, stopping any previous owner. The
// previous owner keeps its listeners; only its running flag is cleared.
func claim(e *scene.Entity, path string, a *Animation) {
	if e == nil || path == "" || a == nil {
		return
	}
	owners := claims[e]
	if owners == nil {
		owners = make(map[string]*Animation)
		claims[e] = owners
	}
	if prev := owners[path]; prev != nil && prev != a {
		prev.stop()
	}
	owners[path] = a
}

// release drops a's ownership of path, if it still holds it.
func release(e *scene.Entity, path string, a *Animation) {
	owners := claims[e]
	if owners == nil {
		return
	}
	if owners[path] == a {
		delete(owners, path)
	}
	if len(owners) == 0 {
		delete(claims, e)
	}
}

// owner reports the current owning instance for a property path.
func owner(e *scene.Entity, path string) *Animation {
	return claims[e][path]
}
