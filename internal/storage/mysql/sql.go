package mysql

const upsertHotelSQL = `
INSERT INTO hoteles
  (id, nombre, direccion, telefono, correo, numhabitacion, descripcion, servicios, latitud, longitud, imagen)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  nombre        = VALUES(nombre),
  direccion     = VALUES(direccion),
  telefono      = VALUES(telefono),
  correo        = VALUES(correo),
  numhabitacion = VALUES(numhabitacion),
  descripcion   = VALUES(descripcion),
  servicios     = VALUES(servicios),
  latitud       = VALUES(latitud),
  longitud      = VALUES(longitud),
  imagen        = VALUES(imagen),
  updated_at    = CURRENT_TIMESTAMP
`

const upsertCuartoSQL = `
INSERT INTO cuartos
  (id, nombre, estado, horario, id_hotel, id_tipohabitacion,
   preciohora, preciodia, precionoche, preciosemana, portada, imagenes)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  nombre            = VALUES(nombre),
  estado            = VALUES(estado),
  horario           = VALUES(horario),
  id_hotel          = VALUES(id_hotel),
  id_tipohabitacion = VALUES(id_tipohabitacion),
  preciohora        = VALUES(preciohora),
  preciodia         = VALUES(preciodia),
  precionoche       = VALUES(precionoche),
  preciosemana      = VALUES(preciosemana),
  portada           = VALUES(portada),
  imagenes          = VALUES(imagenes),
  updated_at        = CURRENT_TIMESTAMP
`

const upsertPerfilSQL = `
INSERT INTO perfil
  (id, nombre_empresa, eslogan, direccion, correo, telefono, logo)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  nombre_empresa = VALUES(nombre_empresa),
  eslogan        = VALUES(eslogan),
  direccion      = VALUES(direccion),
  correo         = VALUES(correo),
  telefono       = VALUES(telefono),
  logo           = VALUES(logo),
  updated_at     = CURRENT_TIMESTAMP
`

const insertMissSQL = `
INSERT INTO sync_misses (resource, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  http_status = VALUES(http_status),
  reason      = VALUES(reason),
  seen_at     = CURRENT_TIMESTAMP
`

const setCuartoEstadoSQL = `UPDATE cuartos SET estado = ? WHERE id = ?`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const hotelColumns = `
  id, nombre, direccion, telefono, correo, numhabitacion,
  descripcion, servicios, latitud, longitud, imagen
`

const getHotelSQL = `SELECT` + hotelColumns + `FROM hoteles WHERE id = ?`

const listHotelesSQL = `SELECT` + hotelColumns + `FROM hoteles ORDER BY nombre, id`

const cuartoColumns = `
  id, nombre, estado, horario, id_hotel, id_tipohabitacion,
  preciohora, preciodia, precionoche, preciosemana, portada, imagenes
`

const getCuartoSQL = `SELECT` + cuartoColumns + `FROM cuartos WHERE id = ?`

const listCuartosDeHotelSQL = `SELECT` + cuartoColumns + `FROM cuartos WHERE id_hotel = ? ORDER BY nombre, id`

const getPerfilSQL = `
SELECT id, nombre_empresa, eslogan, direccion, correo, telefono, logo
FROM perfil
ORDER BY id
LIMIT 1
`
