package store

import (
	"crown_transport/internal/models"
	"crown_transport/internal/schedule"
)

func toJob(m *models.Job, routeNo string) schedule.Job {
	job := schedule.Job{
		ID:             m.ID,
		RouteNo:        routeNo,
		OperatingDates: []string(m.OperatingDates),
		Driver:         toDriver(m.Driver),
		Vehicle:        toVehicle(m.Vehicle),
		Pricing: schedule.Pricing{
			ContractPrice: m.ContractPrice,
			DriverPrice:   m.DriverPrice,
			PAPrice:       m.PAPrice,
			IsPANeeded:    m.IsPANeeded,
		},
	}
	for _, s := range m.Stops {
		stop := schedule.Stop{
			Location: s.Location,
			IsSchool: s.IsSchool,
			SchoolID: s.SchoolID,
			TimeAM:   s.TimeAM,
			TimePM:   s.TimePM,
		}
		for _, id := range s.Students {
			if id > 0 {
				stop.Students = append(stop.Students, uint(id))
			}
		}
		job.Stops = append(job.Stops, stop)
	}
	for _, ta := range m.TemporaryAssignments {
		job.TemporaryAssignments = append(job.TemporaryAssignments, schedule.TemporaryAssignment{
			Date:      ta.Date,
			StartDate: ta.StartDate,
			EndDate:   ta.EndDate,
			Driver:    toDriver(ta.Driver),
			Vehicle:   toVehicle(ta.Vehicle),
			TimeOfDay: schedule.TimeOfDay(ta.TimeOfDay),
		})
	}
	for _, h := range m.SchoolHolidays {
		job.SchoolHolidays = append(job.SchoolHolidays, schedule.SchoolHoliday{Date: h.Date, SchoolID: h.SchoolID})
	}
	for _, s := range m.SpecialServices {
		job.SpecialServices = append(job.SpecialServices, schedule.SpecialService{
			StudentID:        s.StudentID,
			DayOfWeek:        s.DayOfWeek,
			ServiceType:      s.ServiceType,
			SpecialTime:      s.SpecialTime,
			AdditionalCharge: s.AdditionalCharge,
			Notes:            s.Notes,
		})
	}
	for _, a := range m.Attendance {
		job.Attendance = append(job.Attendance, schedule.AttendanceRecord{
			StudentID:       a.StudentID,
			Date:            a.Date,
			MorningAttended: a.MorningAttended,
			EveningAttended: a.EveningAttended,
			Present:         a.Present,
		})
	}
	return job
}

func toDriver(d models.Driver) schedule.Driver {
	return schedule.Driver{ID: d.ID, Name: d.Name, Phone: d.Phone}
}

func toVehicle(v models.Vehicle) schedule.Vehicle {
	return schedule.Vehicle{ID: v.ID, Registration: v.VehicleRegistration}
}
