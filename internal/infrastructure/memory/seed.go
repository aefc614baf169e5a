package memory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caresync-hms/internal/domain/entity"
	"github.com/jhoicas/caresync-hms/internal/domain/repository"
)

// SeedRecords datos de demostración de la consola (5 registros por colección principal).
func SeedRecords() []entity.Record {
	var out []entity.Record
	add := func(t entity.EntityType, id string, fields map[string]any) {
		out = append(out, entity.Record{ID: id, Type: t, Fields: fields})
	}

	users := []struct{ id, name, email, role, dept string }{
		{"USR001", "Dr. John Smith", "john@hospital.com", entity.RoleDoctor, "cardiology"},
		{"USR002", "Nurse Sarah Johnson", "sarah@hospital.com", entity.RoleNurse, "emergency"},
		{"USR003", "Admin Mike Wilson", "mike@hospital.com", entity.RoleAdmin, "admin"},
		{"USR004", "Lab Tech Emma Davis", "emma@hospital.com", entity.RoleLab, "laboratory"},
		{"USR005", "Pharmacist Alex Brown", "alex@hospital.com", entity.RolePharmacy, "pharmacy"},
	}
	for _, u := range users {
		add(entity.TypeUser, u.id, map[string]any{
			"name": u.name, "email": u.email, "role": u.role, "department": u.dept, "status": "active",
		})
	}

	patients := []struct {
		id, name      string
		age           int
		gender, phone string
		email, addr   string
		registered    string
	}{
		{"PAT001", "Rajesh Kumar", 45, "male", "9876543210", "rajesh@example.com", "123 Main St, City", "2024-01-15"},
		{"PAT002", "Priya Sharma", 32, "female", "8765432109", "priya@example.com", "456 Oak Ave, City", "2024-01-16"},
		{"PAT003", "Amit Patel", 28, "male", "7654321098", "amit@example.com", "789 Pine Rd, City", "2024-01-17"},
		{"PAT004", "Sunita Devi", 55, "female", "6543210987", "sunita@example.com", "321 Elm St, City", "2024-01-18"},
		{"PAT005", "Vikram Singh", 40, "male", "5432109876", "vikram@example.com", "654 Maple Dr, City", "2024-01-19"},
	}
	for _, p := range patients {
		add(entity.TypePatient, p.id, map[string]any{
			"name": p.name, "age": p.age, "gender": p.gender, "phone": p.phone,
			"email": p.email, "address": p.addr, "registeredDate": p.registered,
		})
	}

	appointments := []struct{ id, patientID, patientName, doctor, time, status string }{
		{"APT001", "PAT001", "Rajesh Kumar", "Dr. John Smith", "10:00", "scheduled"},
		{"APT002", "PAT002", "Priya Sharma", "Dr. John Smith", "11:00", "waiting"},
		{"APT003", "PAT003", "Amit Patel", "Dr. Sarah Johnson", "12:00", "in-consultation"},
		{"APT004", "PAT004", "Sunita Devi", "Dr. Mike Wilson", "13:00", "completed"},
		{"APT005", "PAT005", "Vikram Singh", "Dr. John Smith", "14:00", "scheduled"},
	}
	for _, a := range appointments {
		add(entity.TypeAppointment, a.id, map[string]any{
			"patientId": a.patientID, "patientName": a.patientName, "doctorName": a.doctor,
			"date": "2024-01-20", "time": a.time, "status": a.status,
		})
	}

	labOrders := []struct{ id, patientID, patientName, test, status, date string }{
		{"LAB001", "PAT001", "Rajesh Kumar", "Blood Test", "pending", "2024-01-19"},
		{"LAB002", "PAT002", "Priya Sharma", "X-Ray", "in-progress", "2024-01-19"},
		{"LAB003", "PAT003", "Amit Patel", "MRI", "completed", "2024-01-18"},
		{"LAB004", "PAT004", "Sunita Devi", "ECG", "pending", "2024-01-20"},
		{"LAB005", "PAT005", "Vikram Singh", "Urine Test", "in-progress", "2024-01-20"},
	}
	for _, l := range labOrders {
		add(entity.TypeLabOrder, l.id, map[string]any{
			"patientId": l.patientID, "patientName": l.patientName, "testType": l.test,
			"status": l.status, "date": l.date,
		})
	}

	inventory := []struct {
		id, name, category string
		qty                int
		unit               string
		minStock           int
		price              int64
	}{
		{"INV001", "Paracetamol", "medicine", 150, "tablets", 50, 5},
		{"INV002", "Aspirin", "medicine", 80, "tablets", 30, 3},
		{"INV003", "Gauze Bandage", "consumable", 200, "pieces", 100, 2},
		{"INV004", "Syringe", "consumable", 50, "pieces", 100, 8},
		{"INV005", "Thermometer", "equipment", 15, "pieces", 5, 250},
	}
	for _, i := range inventory {
		add(entity.TypeInventoryItem, i.id, map[string]any{
			"name": i.name, "category": i.category, "quantity": i.qty, "unit": i.unit,
			"minStock": i.minStock, "price": decimal.NewFromInt(i.price),
		})
	}

	staff := []struct{ id, name, dept, role, spec, contact string }{
		{"STF001", "Dr. John Smith", "cardiology", "doctor", "Cardiology", "9876543210"},
		{"STF002", "Dr. Sarah Johnson", "emergency", "doctor", "Emergency Medicine", "8765432109"},
		{"STF003", "Nurse Emma Davis", "emergency", "nurse", "Critical Care", "7654321098"},
		{"STF004", "Dr. Mike Wilson", "general", "doctor", "General Medicine", "6543210987"},
		{"STF005", "Pharmacist Alex Brown", "pharmacy", "pharmacist", "Clinical Pharmacy", "5432109876"},
	}
	for _, s := range staff {
		add(entity.TypeStaff, s.id, map[string]any{
			"name": s.name, "department": s.dept, "role": s.role,
			"specialization": s.spec, "contact": s.contact,
		})
	}

	return out
}

// Seed importa los datos de demostración en el almacén.
func Seed(store repository.EntityStore) error {
	for _, rec := range SeedRecords() {
		if err := store.Import(rec); err != nil {
			return fmt.Errorf("seed %s %s: %w", rec.Type, rec.ID, err)
		}
	}
	return nil
}
