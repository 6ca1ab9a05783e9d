package hospital

import (
	"os"
	"path/filepath"
	"testing"

	"medichat/medichat/utils/logging"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.InitTestLogger()
	m.Run()
}

const fixture = `Metropolitan Advanced Medical Center - Daily Report

General Ward: 30/40 beds occupied
ICU Ward: 8/10 beds occupied

Death Records:
2024-01-30: 2 deaths
2024-01-31: 1 deaths

Radiology Department:
- General Shift (8am-4pm):
  * Dr. Patel
  * Dr. Kim
Cardiology Department:
- Night Shift (10pm-6am):
  * Dr. Osei

Paracetamol Study (2019):
- Success Rate: 85%
- Sample Size: 200
`

func newTestGPT(t *testing.T) *GPT {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hospital_data.txt")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))
	return New(path)
}

func Test_Bed_Availability(t *testing.T) {
	req := require.New(t)
	g := newTestGPT(t)

	beds, err := g.BedAvailability("General")
	req.NoError(err)
	req.Equal(40, beds.TotalBeds)
	req.Equal(30, beds.OccupiedBeds)
	req.Equal(10, beds.AvailableBeds)
	req.InDelta(75.0, beds.OccupancyRate, 0.01)

	_, err = g.BedAvailability("Maternity")
	req.Error(err)
}

func Test_Death_Rate(t *testing.T) {
	req := require.New(t)
	g := newTestGPT(t)

	dr, err := g.DeathRate("2024-01-30")
	req.NoError(err)
	req.Equal(2, dr.TotalDeaths)

	_, err = g.DeathRate("2024-02-01")
	req.Error(err)
}

func Test_Staff_Schedule(t *testing.T) {
	req := require.New(t)
	g := newTestGPT(t)

	s, err := g.StaffSchedule("Radiology", "General")
	req.NoError(err)
	req.Equal([]string{"Dr. Patel", "Dr. Kim"}, s.Staff)

	_, err = g.StaffSchedule("Radiology", "Night")
	req.Error(err)
}

func Test_Treatment_Outcome(t *testing.T) {
	req := require.New(t)
	g := newTestGPT(t)

	o, err := g.TreatmentOutcome("Paracetamol", "2019")
	req.NoError(err)
	req.Equal("85%", o.Details["Success Rate"])
	req.Equal("200", o.Details["Sample Size"])
}

func Test_Process_Query_Dispatch(t *testing.T) {
	req := require.New(t)
	g := newTestGPT(t)

	result, err := g.ProcessQuery("How many beds are available in the General Ward?")
	req.NoError(err)
	beds, ok := result.(*BedAvailability)
	req.True(ok)
	req.Equal(10, beds.AvailableBeds)

	result, err = g.ProcessQuery("What was the death rate on 2024-01-31?")
	req.NoError(err)
	dr, ok := result.(*DeathRate)
	req.True(ok)
	req.Equal(1, dr.TotalDeaths)

	result, err = g.ProcessQuery("Who is on the staff of the Cardiology department during the Night shift?")
	req.NoError(err)
	s, ok := result.(*StaffSchedule)
	req.True(ok)
	req.Equal([]string{"Dr. Osei"}, s.Staff)

	_, err = g.ProcessQuery("tell me a joke")
	req.Error(err)
}

func Test_Missing_Data_File_Degrades(t *testing.T) {
	req := require.New(t)
	g := New(filepath.Join(t.TempDir(), "does-not-exist.txt"))

	_, err := g.BedAvailability("General")
	req.Error(err)
}
