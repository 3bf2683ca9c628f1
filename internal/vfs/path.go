package vfs

import "strings"

// HomeDir is the fixed home directory every session starts in.
const HomeDir = "/home/user"

// Resolve turns any user-supplied path into a normalized absolute path.
// It is the single normalization point: cd, ls, cat, stat, rm and every
// other operation share identical "~", "." and ".." semantics because
// they all pass through here.
//
// Rules:
//   - blank input resolves to cwd
//   - a leading "~" is replaced by the home directory
//   - absolute paths are normalized independently of cwd
//   - relative paths are joined to cwd, then normalized
//   - ".." past the root is a no-op, never an error
func Resolve(path, cwd string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		p = cwd
	}
	if p == "~" {
		p = HomeDir
	} else if strings.HasPrefix(p, "~/") {
		p = HomeDir + p[1:]
	}
	if !strings.HasPrefix(p, "/") {
		p = cwd + "/" + p
	}
	return normalize(p)
}

// normalize collapses "." and ".." segments of an absolute path.
func normalize(p string) string {
	var stack []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
			// collapse duplicate separators
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, seg)
		}
	}
	return "/" + strings.Join(stack, "/")
}

// Split breaks a normalized absolute path into its segments. The root
// path yields no segments.
func Split(abs string) []string {
	trimmed := strings.Trim(abs, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// Base returns the last segment of a normalized absolute path, or ""
// for the root.
func Base(abs string) string {
	segs := Split(abs)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Parent returns the parent of a normalized absolute path. The root is
// its own parent.
func Parent(abs string) string {
	segs := Split(abs)
	if len(segs) <= 1 {
		return "/"
	}
	return "/" + strings.Join(segs[:len(segs)-1], "/")
}

// Join appends a child name to an absolute directory path.
func Join(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}
