package validators

import "go.mongodb.org/mongo-driver/bson"

var CarValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"brand",
			"model",
			"category",
			"year",
			"seating_capacity",
			"fuel_type",
			"transmission",
			"price_per_day",
			"location",
			"owner",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"brand": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 60,
			},

			"model": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 60,
			},

			"image": bson.M{
				"bsonType": "string",
			},

			"category": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Sedan",
					"SUV",
					"Hatchback",
					"Convertible",
					"Coupe",
					"Truck",
					"Van",
					"Other",
				},
			},

			"year": bson.M{
				"bsonType": "int",
				"minimum":  1900,
				"maximum":  2100,
			},

			"seating_capacity": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  20,
			},

			"fuel_type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Petrol",
					"Diesel",
					"Electric",
					"Hybrid",
					"CNG",
					"Other",
				},
			},

			"transmission": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Automatic",
					"Manual",
					"Semi-Automatic",
				},
			},

			"price_per_day": bson.M{
				"bsonType": "number",
				"minimum":  0,
			},

			"is_available": bson.M{
				"bsonType": "bool",
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"location": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"owner": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"removed": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
