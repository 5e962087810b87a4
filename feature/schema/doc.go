// Package schema brings older timing configs up to the current layout.
//
// Each required key is a Field with an anchor: when the key is missing it is
// inserted directly after the anchor, with the field's default and
// annotation. Existing keys are never touched, so applying a field twice is a
// no-op. The canonical fields, in application order:
//
//	n-iterations  after fitter  1
//	noise         after bipm    {results-dir}
//	dmx           after noise   {ignore-dmx, fratio, max-sw-delay, custom-dmx}
//	outlier       after dmx     {method, n-burn, n-samples}
package schema
