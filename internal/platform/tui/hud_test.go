package tui

import "testing"

func TestScoreTickerRollsUp(t *testing.T) {
	var st scoreTicker
	st.Set(100)

	st.Update(scoreRollDuration / 2)
	if v := st.Value(); v <= 0 || v >= 100 {
		t.Errorf("Value() mid-roll = %d, expected strictly between 0 and 100", v)
	}

	st.Update(scoreRollDuration)
	if v := st.Value(); v != 100 {
		t.Errorf("Value() after roll = %d, expected 100", v)
	}
}

func TestScoreTickerSnapsDown(t *testing.T) {
	var st scoreTicker
	st.Set(500)
	st.Update(1)

	st.Set(0)
	if v := st.Value(); v != 0 {
		t.Errorf("Value() after reset = %d, expected 0", v)
	}
}

func TestScoreTickerRetarget(t *testing.T) {
	var st scoreTicker
	st.Set(100)
	st.Update(scoreRollDuration / 2)
	mid := st.Value()

	st.Set(200)
	st.Update(0.001)
	if v := st.Value(); v < mid {
		t.Errorf("Value() after retarget = %d, dropped below %d", v, mid)
	}
	st.Update(1)
	if v := st.Value(); v != 200 {
		t.Errorf("Value() = %d, expected 200", v)
	}
}
