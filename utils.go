package sdf

import (
	"math"
	"strings"

	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/sdfmath"
)

// isReservedName reports whether a name is reserved for internal use:
// "world" and any name that both starts and ends with "__".
func isReservedName(name string) bool {
	if name == "world" {
		return true
	}
	return len(name) >= 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}

// isValidFrameReference reports whether a name may appear as a frame
// reference. Reserved names are allowed here ("__model__" is a legal
// target); only "__root__" is not.
func isValidFrameReference(name string) bool {
	return name != "__root__"
}

// loadName reads the entity name from the element's "name" attribute. The
// bool reports whether the attribute exists at all.
func loadName(e *Element) (string, bool) {
	return GetValue(e, "name", "")
}

// loadPose reads a pose child (or the element itself when it already is a
// pose element) and its relative_to attribute. The bool reports whether a
// pose value was found.
func loadPose(e *Element) (sdfmath.Pose, string, bool) {
	poseElem := e
	if e.Name() != "pose" {
		poseElem = e.FindElement("pose")
		if poseElem == nil {
			return sdfmath.PoseIdentity(), "", false
		}
	}
	relativeTo, _ := GetValue(poseElem, "relative_to", "")
	pose, ok := GetValue(poseElem, "", sdfmath.PoseIdentity())
	if !ok {
		return sdfmath.PoseIdentity(), "", false
	}
	return pose, relativeTo, true
}

// infiniteIfNegative maps negative magnitudes onto +Inf; joint limits use
// negative values to mean unbounded.
func infiniteIfNegative(v float64) float64 {
	if v < 0 {
		return math.Inf(1)
	}
	return v
}

// elementLoader is satisfied by every domain object that can populate
// itself from a document element.
type elementLoader interface {
	Load(e *Element) errors.Errors
}

// loadUniqueRepeated loads every child named sdfName into a slice of
// domain objects whose names must be unique. A duplicate name is reported
// and the later occurrence dropped; load errors never stop the sweep. A
// missing child is not an error.
func loadUniqueRepeated[T any, PT interface {
	*T
	elementLoader
}](parent *Element, sdfName string) ([]T, errors.Errors) {
	var errs errors.Errors
	var objs []T
	var names []string

	for elem := parent.FindElement(sdfName); elem != nil; elem = elem.GetNextElement(sdfName) {
		var obj T
		loadErrs := PT(&obj).Load(elem)

		// Name read for uniqueness only; load already reported problems.
		name, _ := loadName(elem)
		dup := false
		for _, n := range names {
			if n == name {
				dup = true
				break
			}
		}
		if dup {
			errs = errors.Append(errs, elem.errorLocation(errors.Newf(errors.CodeDuplicateName,
				"%s with name[%s] already exists", sdfName, name)))
		} else {
			objs = append(objs, obj)
			names = append(names, name)
		}
		errs = append(errs, loadErrs...)
	}
	return objs, errs
}

// loadRepeated loads every child named sdfName, keeping all of them
// regardless of load errors. A missing child is not an error.
func loadRepeated[T any, PT interface {
	*T
	elementLoader
}](parent *Element, sdfName string) ([]T, errors.Errors) {
	var errs errors.Errors
	var objs []T

	for elem := parent.FindElement(sdfName); elem != nil; elem = elem.GetNextElement(sdfName) {
		var obj T
		errs = append(errs, PT(&obj).Load(elem)...)
		objs = append(objs, obj)
	}
	return objs, errs
}
