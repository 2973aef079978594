package landmark

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist            = 0
	ThumbCMC         = 1
	ThumbMCP         = 2
	ThumbIP          = 3
	ThumbTip         = 4
	IndexMCP         = 5
	IndexPIP         = 6
	IndexDIP         = 7
	IndexTip         = 8
	MiddleMCP        = 9
	MiddlePIP        = 10
	MiddleDIP        = 11
	MiddleTip        = 12
	RingMCP          = 13
	RingPIP          = 14
	RingDIP          = 15
	RingTip          = 16
	PinkyMCP         = 17
	PinkyPIP         = 18
	PinkyDIP         = 19
	PinkyTip         = 20
	NumHandLandmarks = 21
)

// Body landmark indices following the MediaPipe pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose             = 0
	LeftEyeInner     = 1
	LeftEye          = 2
	LeftEyeOuter     = 3
	RightEyeInner    = 4
	RightEye         = 5
	RightEyeOuter    = 6
	LeftEar          = 7
	RightEar         = 8
	MouthLeft        = 9
	MouthRight       = 10
	LeftShoulder     = 11
	RightShoulder    = 12
	LeftElbow        = 13
	RightElbow       = 14
	LeftWrist        = 15
	RightWrist       = 16
	LeftPinky        = 17
	RightPinky       = 18
	LeftIndex        = 19
	RightIndex       = 20
	LeftThumb        = 21
	RightThumb       = 22
	LeftHip          = 23
	RightHip         = 24
	LeftKnee         = 25
	RightKnee        = 26
	LeftAnkle        = 27
	RightAnkle       = 28
	LeftHeel         = 29
	RightHeel        = 30
	LeftFootIndex    = 31
	RightFootIndex   = 32
	NumBodyLandmarks = 33
)
